package config

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it. Known subject IDs are offered for gating.
func RunWizard(path string, subjectIDs []string) (*Config, error) {
	fmt.Println("Welcome to cheatsheet! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Parent platform.
	siteURL, err := (&promptui.Prompt{
		Label:    "Parent platform URL",
		Default:  cfg.Platform.SiteURL,
		Validate: checkAbsolute,
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("platform url: %w", err)
	}
	cfg.Platform.SiteURL = siteURL

	apiURL, err := (&promptui.Prompt{
		Label:    "Platform API URL",
		Default:  cfg.Platform.APIURL,
		Validate: checkAbsolute,
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("api url: %w", err)
	}
	cfg.Platform.APIURL = apiURL

	// 2. Where this site lives.
	learnURL, err := (&promptui.Prompt{
		Label:    "Public URL of this site",
		Default:  cfg.SiteURL,
		Validate: checkAbsolute,
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("site url: %w", err)
	}
	cfg.SiteURL = learnURL

	// 3. Content directory.
	contentDir, err := (&promptui.Prompt{
		Label:   "Content directory",
		Default: cfg.ContentDir,
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	cfg.ContentDir = contentDir

	// 4. Gated subjects.
	gated, err := (&promptui.Prompt{
		Label:   "Subjects that require sign-in (comma-separated IDs)",
		Default: strings.Join(cfg.GatedSubjects, ","),
		Validate: func(s string) error {
			return checkSubjects(splitAndTrim(s), subjectIDs)
		},
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("gated subjects: %w", err)
	}
	cfg.GatedSubjects = splitAndTrim(gated)

	// 5. Production cookies.
	_, mode, err := (&promptui.Select{
		Label: "Environment",
		Items: []string{"development", "production"},
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	cfg.Production = mode == "production"

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// checkSubjects rejects IDs that are not in known. An empty known list
// accepts anything.
func checkSubjects(ids, known []string) error {
	if len(known) == 0 {
		return nil
	}
	set := make(map[string]bool, len(known))
	for _, id := range known {
		set[id] = true
	}
	for _, id := range ids {
		if !set[id] {
			return fmt.Errorf("unknown subject %q", id)
		}
	}
	return nil
}
