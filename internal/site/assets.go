package site

// styleCSS is the site stylesheet.
const styleCSS = `/* ============ CSS Variables ============ */
:root {
  --bg: #ffffff;
  --bg-secondary: #f8f9fa;
  --bg-sidebar: #f1f3f5;
  --text: #212529;
  --text-secondary: #495057;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #228be6;
  --accent-hover: #1c7ed6;
  --accent-light: #e7f5ff;
  --code-bg: #f1f3f5;
  --warning: #f08c00;
  --danger: #e03131;
  --success: #2f9e44;
  --sidebar-width: 260px;
  --content-max-width: 900px;
  --shadow: 0 1px 3px rgba(0,0,0,0.08);
  --shadow-lg: 0 4px 12px rgba(0,0,0,0.1);
}

@media (prefers-color-scheme: dark) {
  :root {
    --bg: #1a1b26;
    --bg-secondary: #1f2030;
    --bg-sidebar: #16171f;
    --text: #c0caf5;
    --text-secondary: #a9b1d6;
    --text-muted: #565f89;
    --border: #292e42;
    --accent: #7aa2f7;
    --accent-hover: #89b4fa;
    --accent-light: #1a1b2e;
    --code-bg: #1f2030;
    --shadow: 0 1px 3px rgba(0,0,0,0.3);
    --shadow-lg: 0 4px 12px rgba(0,0,0,0.4);
  }
}

/* ============ Reset & Base ============ */
*, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }
html { font-size: 16px; scroll-behavior: smooth; }
body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.7;
  min-height: 100vh;
  display: flex;
  flex-direction: column;
}
a { color: var(--accent); text-decoration: none; }
a:hover { color: var(--accent-hover); text-decoration: underline; }

/* ============ Header ============ */
.site-header {
  display: flex;
  align-items: center;
  gap: 1.5rem;
  padding: 0.75rem 1.5rem;
  border-bottom: 1px solid var(--border);
  background: var(--bg-secondary);
  position: sticky;
  top: 0;
  z-index: 10;
}
.brand { font-weight: 700; font-size: 1.15rem; color: var(--text); }
.header-links { display: flex; gap: 1rem; }
.account { margin-left: auto; display: flex; align-items: center; gap: 0.5rem; }
.user-menu { display: flex; align-items: center; gap: 0.6rem; font-size: 0.9rem; }
.avatar { width: 32px; height: 32px; border-radius: 50%; object-fit: cover; }
.avatar-initial {
  display: inline-flex; align-items: center; justify-content: center;
  background: var(--accent); color: #fff; font-weight: 600; text-transform: uppercase;
}
.plan {
  font-size: 0.7rem; text-transform: uppercase; letter-spacing: 0.05em;
  padding: 0.1rem 0.45rem; border-radius: 999px; background: var(--accent-light);
}
.plan-pro { color: var(--success); }
.plan-enterprise { color: var(--warning); }

/* ============ Search ============ */
.search { position: relative; flex: 0 1 320px; }
.search-form { display: flex; }
.search-form input {
  flex: 1; padding: 0.4rem 0.75rem; border: 1px solid var(--border);
  border-radius: 6px 0 0 6px; background: var(--bg); color: var(--text);
}
.search-form button {
  padding: 0.4rem 0.75rem; border: 1px solid var(--border); border-left: 0;
  border-radius: 0 6px 6px 0; background: var(--bg-sidebar); color: var(--text); cursor: pointer;
}
.search-results {
  position: absolute; top: 100%; left: 0; right: 0; list-style: none;
  background: var(--bg); border: 1px solid var(--border); border-radius: 6px;
  box-shadow: var(--shadow-lg); max-height: 320px; overflow-y: auto;
}
.search-results a { display: block; padding: 0.45rem 0.75rem; color: var(--text); }
.search-results a:hover, .search-results a.selected { background: var(--accent-light); text-decoration: none; }

/* ============ Buttons ============ */
.button {
  display: inline-block; padding: 0.45rem 1rem; border-radius: 6px;
  border: 1px solid var(--border); background: var(--bg); color: var(--text);
  font: inherit; cursor: pointer;
}
.button:hover { text-decoration: none; border-color: var(--accent); }
.button-primary { background: var(--accent); border-color: var(--accent); color: #fff; }
.button-primary:hover { background: var(--accent-hover); color: #fff; }
.button-ghost { background: transparent; border-color: transparent; color: var(--text-secondary); }

/* ============ Layout ============ */
.site-main { flex: 1; width: 100%; max-width: 1200px; margin: 0 auto; padding: 2rem 1.5rem; }
.site-footer { padding: 1.5rem; text-align: center; color: var(--text-muted); border-top: 1px solid var(--border); }
.hero { text-align: center; padding: 3rem 0 2rem; }
.hero h1 { font-size: 2.5rem; }
.tagline { font-size: 1.25rem; color: var(--accent); font-weight: 600; }
.category { margin: 2rem 0; }
.category-blurb { color: var(--text-muted); margin-bottom: 0.75rem; }
.cards { display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 1rem; }
.card {
  display: flex; flex-direction: column; gap: 0.35rem; padding: 1rem;
  border: 1px solid var(--border); border-radius: 8px; background: var(--bg-secondary);
  color: var(--text); box-shadow: var(--shadow);
}
.card:hover { border-color: var(--accent); text-decoration: none; box-shadow: var(--shadow-lg); }
.card-title { font-weight: 600; }
.card-description { font-size: 0.875rem; color: var(--text-secondary); }
.back-link { display: inline-block; margin-bottom: 1rem; font-size: 0.9rem; }
.page-header { margin-bottom: 2rem; }
.page-header h1 { font-size: 2rem; }
.page-header p { color: var(--text-secondary); }

.cheatsheet-layout { display: grid; grid-template-columns: minmax(0, 1fr) 240px; gap: 2rem; }
.toc { position: sticky; top: 5rem; align-self: start; font-size: 0.875rem; }
.toc h2 { font-size: 0.8rem; text-transform: uppercase; color: var(--text-muted); margin-bottom: 0.5rem; }
.toc ol { list-style: none; padding-left: 0; }
.toc ol ol { padding-left: 0.9rem; }
.toc a { color: var(--text-secondary); }

.docs-layout { display: grid; grid-template-columns: var(--sidebar-width) minmax(0, 1fr); gap: 2rem; }
.docs-sidebar { border-right: 1px solid var(--border); padding-right: 1rem; font-size: 0.9rem; }
.docs-sidebar h4 { margin-top: 1rem; color: var(--text-muted); font-size: 0.75rem; text-transform: uppercase; }
.docs-sidebar ul { list-style: none; }
.docs-sidebar a { color: var(--text-secondary); }
.docs-sidebar a.active { color: var(--accent); font-weight: 600; }

@media (max-width: 860px) {
  .cheatsheet-layout, .docs-layout { grid-template-columns: 1fr; }
  .toc, .docs-sidebar { position: static; border: 0; }
  .site-header { flex-wrap: wrap; }
}

/* ============ Prose ============ */
.prose { max-width: var(--content-max-width); }
.prose h1, .prose h2, .prose h3, .prose h4 { margin: 1.75rem 0 0.75rem; line-height: 1.3; }
.prose h2 { padding-bottom: 0.3rem; border-bottom: 1px solid var(--border); }
.prose p, .prose ul, .prose ol, .prose table, .prose pre { margin-bottom: 1rem; }
.prose ul, .prose ol { padding-left: 1.5rem; }
.prose code { background: var(--code-bg); padding: 0.1rem 0.35rem; border-radius: 4px; font-size: 0.875em; }
.prose pre { padding: 1rem; border-radius: 8px; overflow-x: auto; background: var(--code-bg); }
.prose pre code { background: none; padding: 0; }
pre { position: relative; }
.code-copy {
  position: absolute;
  top: 0.5rem;
  right: 0.5rem;
  padding: 0.25rem 0.5rem;
  font-size: 0.75rem;
  color: var(--text-muted);
  background: var(--code-bg);
  border: 1px solid var(--border);
  border-radius: 4px;
  cursor: pointer;
}
.code-copy:hover { color: var(--text); }
.code-copy.copied { color: var(--success); border-color: var(--success); }
.prose table { border-collapse: collapse; width: 100%; }
.prose th, .prose td { border: 1px solid var(--border); padding: 0.4rem 0.75rem; text-align: left; }
.heading-anchor { color: inherit; }
.render-fallback { white-space: pre-wrap; }

.callout { border-left: 4px solid var(--accent); background: var(--accent-light); padding: 0.75rem 1rem; border-radius: 6px; margin-bottom: 1rem; }
.callout-warning { border-color: var(--warning); }
.callout-error { border-color: var(--danger); }
.callout-success { border-color: var(--success); }
.callout-title { font-weight: 600; }
.tabs .tab { border: 1px solid var(--border); border-radius: 6px; padding: 0.75rem; margin-bottom: 0.5rem; }
.tab-label { font-weight: 600; font-size: 0.8rem; color: var(--text-muted); }
.code-comparison { display: grid; grid-template-columns: 1fr 1fr; gap: 1rem; }

/* ============ Gate ============ */
.gate { text-align: center; padding: 3rem 1rem; border: 1px solid var(--border); border-radius: 8px; background: var(--bg-secondary); }
.gate h2 { margin-bottom: 0.5rem; }
.gate p { color: var(--text-secondary); margin-bottom: 1.25rem; }
.gate .button { margin: 0.25rem; }
.spinner {
  width: 36px; height: 36px; margin: 0 auto 1rem; border-radius: 50%;
  border: 3px solid var(--border); border-top-color: var(--accent);
  animation: spin 0.8s linear infinite;
}
@keyframes spin { to { transform: rotate(360deg); } }
`

// siteJS adds a copy button to every code block and filters the inline
// search list on every keystroke. Enter opens the first match and Escape
// clears the box.
const siteJS = `(function () {
  'use strict';

  var label = 'Copy';

  function copyText(text) {
    if (navigator.clipboard && window.isSecureContext) {
      return navigator.clipboard.writeText(text);
    }
    return new Promise(function (resolve, reject) {
      var area = document.createElement('textarea');
      area.value = text;
      area.setAttribute('readonly', '');
      area.style.position = 'fixed';
      area.style.left = '-9999px';
      document.body.appendChild(area);
      area.select();
      var ok = false;
      try { ok = document.execCommand('copy'); } catch (_) {}
      document.body.removeChild(area);
      if (ok) resolve(); else reject(new Error('copy failed'));
    });
  }

  function addCopyButtons(root) {
    root.querySelectorAll('pre > code').forEach(function (code) {
      var pre = code.parentNode;
      if (pre.querySelector('.code-copy')) return;
      var button = document.createElement('button');
      button.type = 'button';
      button.className = 'code-copy';
      button.title = 'Copy code';
      button.textContent = label;
      button.addEventListener('click', function () {
        copyText(code.textContent || '').then(function () {
          button.textContent = 'Copied!';
          button.classList.add('copied');
          setTimeout(function () {
            button.textContent = label;
            button.classList.remove('copied');
          }, 2000);
        }, function (err) {
          console.warn('copy failed:', err);
        });
      });
      pre.appendChild(button);
    });
  }

  addCopyButtons(document);
  // Gated content is swapped in once the auth cycle settles.
  new MutationObserver(function () { addCopyButtons(document); })
    .observe(document.body, { childList: true, subtree: true });
})();

(function () {
  'use strict';

  var input = document.getElementById('search-input');
  var list = document.getElementById('search-results');
  var data = document.getElementById('search-index');
  if (!input || !list || !data) return;

  var entries = [];
  try { entries = JSON.parse(data.textContent) || []; } catch (_) {}
  var results = [];

  function matches(entry, q) {
    if (entry.name.toLowerCase().indexOf(q) !== -1) return true;
    return (entry.keywords || []).some(function (k) {
      return k.toLowerCase().indexOf(q) !== -1;
    });
  }

  function render() {
    list.innerHTML = '';
    results.forEach(function (entry, i) {
      var li = document.createElement('li');
      var a = document.createElement('a');
      a.href = entry.route;
      a.textContent = entry.name;
      if (i === 0) a.className = 'selected';
      li.appendChild(a);
      list.appendChild(li);
    });
    list.hidden = results.length === 0;
  }

  function clear() {
    input.value = '';
    results = [];
    render();
  }

  input.addEventListener('input', function () {
    var q = input.value.toLowerCase();
    results = q.length > 0 ? entries.filter(function (e) { return matches(e, q); }) : [];
    render();
  });

  input.addEventListener('keydown', function (e) {
    if (e.key === 'Escape') clear();
  });

  input.form.addEventListener('submit', function (e) {
    e.preventDefault();
    if (results.length > 0) {
      var target = results[0].route;
      clear();
      window.location.href = target;
    }
  });

  document.addEventListener('mousedown', function (e) {
    if (!document.getElementById('search').contains(e.target)) list.hidden = true;
  });
})();
`

// bridgeJS is the browser half of the auth bridge. Message origins are
// checked against the allow-list before the payload is read.
const bridgeJS = `(function () {
  'use strict';

  var cfgEl = document.getElementById('bridge-config');
  if (!cfgEl) return;
  var cfg = {};
  try { cfg = JSON.parse(cfgEl.textContent) || {}; } catch (_) { return; }
  var trusted = cfg.origins || [];

  var region = document.getElementById('gate-region');
  var loading = region ? region.querySelector('[data-gate="loading"]') : null;
  var cycle = loading ? loading.getAttribute('data-cycle') : '';
  var frame = null;
  var frameTimer = null;

  function isTrusted(origin) {
    return trusted.indexOf(origin) !== -1;
  }

  function post(url, body) {
    return fetch(url, {
      method: 'POST',
      credentials: 'same-origin',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify(body)
    });
  }

  function removeFrame() {
    if (frameTimer) { clearTimeout(frameTimer); frameTimer = null; }
    if (frame && frame.parentNode) frame.parentNode.removeChild(frame);
    frame = null;
  }

  function onMessage(event) {
    if (!isTrusted(event.origin)) return;
    var data = event.data;
    if (!data || typeof data !== 'object') return;

    if (cycle) {
      post('/api/auth/cycles/' + encodeURIComponent(cycle) + '/message', { origin: event.origin, data: data });
      return;
    }
    if (data.type === 'CODEUNIA_AUTH_TOKEN' && data.token && !document.body.hasAttribute('data-signed-in')) {
      post('/api/auth/set-token', { token: data.token, origin: event.origin }).then(function (res) {
        if (res.ok) window.location.reload();
      });
    }
  }

  function settle(body) {
    removeFrame();
    cycle = '';
    if (body && body.html && region) {
      region.innerHTML = body.html;
    } else {
      window.location.reload();
    }
  }

  function poll() {
    fetch('/api/auth/cycles/' + encodeURIComponent(cycle), { credentials: 'same-origin' })
      .then(function (res) {
        if (!res.ok) throw new Error('poll failed: ' + res.status);
        return res.json();
      })
      .then(function (body) {
        if (body.state === 'resolving' || body.state === 'unresolved') {
          poll();
          return;
        }
        settle(body);
      })
      .catch(function () { settle(null); });
  }

  window.addEventListener('message', onMessage);
  window.addEventListener('pagehide', function () {
    window.removeEventListener('message', onMessage);
    removeFrame();
  });

  document.addEventListener('click', function (e) {
    if (e.target.closest && e.target.closest('[data-gate-refresh]')) window.location.reload();
  });

  if (loading) {
    frame = document.createElement('iframe');
    frame.src = loading.getAttribute('data-check-url');
    frame.title = 'Authentication check';
    frame.setAttribute('aria-hidden', 'true');
    frame.style.display = 'none';
    document.body.appendChild(frame);
    frameTimer = setTimeout(removeFrame, parseInt(loading.getAttribute('data-timeout'), 10) || 5000);
    poll();
  }

  if (window.parent !== window && cfg.parentOrigin) {
    window.parent.postMessage({ type: 'REQUEST_AUTH_STATUS' }, cfg.parentOrigin);
  }
})();
`
