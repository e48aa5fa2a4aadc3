package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ziadkadry99/blogrender/internal/dom"
)

// Shell file names looked up in the site directory.
const (
	IndexShellFile = "index.html"
	PostShellFile  = "post.html"
)

// Shells holds the raw page shells. Each render parses a fresh copy.
type Shells struct {
	Index string
	Post  string
}

// LoadShells reads index.html and post.html from siteDir. A missing file, or
// an empty siteDir, falls back to the built-in shell.
func LoadShells(siteDir string) (Shells, error) {
	s := Shells{Index: IndexShell, Post: PostShell}
	if siteDir == "" {
		return s, nil
	}
	for name, dst := range map[string]*string{IndexShellFile: &s.Index, PostShellFile: &s.Post} {
		data, err := os.ReadFile(filepath.Join(siteDir, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Shells{}, fmt.Errorf("reading shell %s: %w", name, err)
		}
		*dst = string(data)
	}
	return s, nil
}

// ParseIndex returns a fresh index document.
func (s Shells) ParseIndex() (*dom.Document, error) { return dom.ParseString(s.Index) }

// ParsePost returns a fresh post document.
func (s Shells) ParsePost() (*dom.Document, error) { return dom.ParseString(s.Post) }

// IndexShell is the built-in home page.
const IndexShell = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Blog</title>
  <meta name="description" content="">
  <link rel="stylesheet" href="/style.css">
</head>
<body>
  <header class="site-header">
    <a class="site-logo" href="/">Blog</a>
    <button class="mobile-menu-toggle" aria-label="Toggle menu">&#9776;</button>
    <nav class="main-nav"><a href="/">Home</a></nav>
  </header>
  <section class="hero">
    <div id="heroCarousel" class="carousel"></div>
    <button id="carouselPrev" class="carousel-control prev" aria-label="Previous slide">&lsaquo;</button>
    <button id="carouselNext" class="carousel-control next" aria-label="Next slide">&rsaquo;</button>
    <div id="carouselDots" class="carousel-dots"></div>
  </section>
  <div class="layout">
    <main>
      <div id="postsGrid" class="posts-grid"></div>
      <nav id="pagination" class="pagination"></nav>
    </main>
    <aside class="sidebar">
      <h3>Categories</h3>
      <ul id="categoryList"></ul>
      <h3>Recent Posts</h3>
      <ul id="recentPosts"></ul>
    </aside>
  </div>
  <footer class="site-footer">&copy; <span id="currentYear"></span></footer>
  <script src="/carousel.js"></script>
</body>
</html>
`

// PostShell is the built-in single post page.
const PostShell = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Blog</title>
  <meta name="description" content="">
  <meta property="og:title" content="">
  <meta property="og:description" content="">
  <link rel="stylesheet" href="/style.css">
</head>
<body>
  <header class="site-header">
    <a class="site-logo" href="/">Blog</a>
    <button class="mobile-menu-toggle" aria-label="Toggle menu">&#9776;</button>
    <nav class="main-nav"><a href="/">Home</a></nav>
  </header>
  <div class="layout">
    <main id="postContent"><p class="loading">Loading...</p></main>
    <aside class="sidebar">
      <h3>Categories</h3>
      <ul id="categoryList"></ul>
      <h3>Recent Posts</h3>
      <ul id="recentPosts"></ul>
    </aside>
  </div>
  <section id="relatedPosts" class="related-posts" hidden>
    <h2>Related Posts</h2>
    <div id="relatedPostsGrid" class="related-grid"></div>
  </section>
  <footer class="site-footer">&copy; <span id="currentYear"></span></footer>
</body>
</html>
`

// defaultAssets are written to the output when the site directory does not
// provide them.
var defaultAssets = map[string]string{
	"style.css":   styleCSS,
	"carousel.js": carouselJS,
}

const styleCSS = `:root {
  --bg: #ffffff;
  --text: #212529;
  --muted: #868e96;
  --border: #dee2e6;
  --accent: #228be6;
}
body { margin: 0; font-family: system-ui, sans-serif; color: var(--text); background: var(--bg); }
.site-header { display: flex; align-items: center; gap: 1rem; padding: 1rem 2rem; border-bottom: 1px solid var(--border); }
.mobile-menu-toggle { display: none; }
.layout { display: grid; grid-template-columns: 1fr 280px; gap: 2rem; max-width: 1200px; margin: 0 auto; padding: 2rem; }
.posts-grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(260px, 1fr)); gap: 1.5rem; }
.post-card { border: 1px solid var(--border); border-radius: 8px; overflow: hidden; }
.post-card img { width: 100%; height: 180px; object-fit: cover; }
.post-card-content { padding: 1rem; }
.post-category { color: var(--accent); font-size: .8rem; text-transform: uppercase; }
.post-date { color: var(--muted); font-size: .8rem; margin-left: .5rem; }
.pagination { display: flex; gap: .5rem; justify-content: center; margin: 2rem 0; }
.pagination-btn { padding: .4rem .8rem; border: 1px solid var(--border); border-radius: 4px; text-decoration: none; }
.pagination-btn.active { background: var(--accent); color: #fff; }
.hero { position: relative; }
.carousel-slide { display: none; position: relative; cursor: pointer; }
.carousel-slide.active { display: block; }
.carousel-image { width: 100%; max-height: 420px; object-fit: cover; }
.carousel-content { position: absolute; bottom: 0; padding: 2rem; color: #fff; background: linear-gradient(transparent, rgba(0,0,0,.7)); width: 100%; box-sizing: border-box; }
.carousel-control { position: absolute; top: 45%; font-size: 2rem; background: none; border: 0; color: #fff; cursor: pointer; }
.carousel-control.prev { left: 1rem; }
.carousel-control.next { right: 1rem; }
.carousel-dots { display: flex; gap: .4rem; justify-content: center; padding: .5rem; }
.carousel-dot { width: 10px; height: 10px; border-radius: 50%; border: 0; background: var(--border); }
.carousel-dot.active { background: var(--accent); }
.post-featured-image { width: 100%; border-radius: 8px; }
.ad-container { min-height: 90px; margin: 1.5rem 0; background: #f8f9fa; }
.related-posts { max-width: 1200px; margin: 0 auto; padding: 0 2rem 2rem; }
.related-grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 1rem; }
.error-message { padding: 1rem; border: 1px solid #fa5252; border-radius: 8px; color: #c92a2a; }
.site-footer { text-align: center; padding: 2rem; color: var(--muted); }
@media (max-width: 768px) {
  .layout { grid-template-columns: 1fr; }
  .mobile-menu-toggle { display: block; }
  .main-nav { display: none; }
  .main-nav.open { display: block; }
}
`

const carouselJS = `(function() {
  "use strict";

  var toggle = document.querySelector(".mobile-menu-toggle");
  var nav = document.querySelector(".main-nav");
  if (toggle && nav) {
    toggle.addEventListener("click", function() { nav.classList.toggle("open"); });
  }

  var root = document.getElementById("heroCarousel");
  if (!root) return;
  var slides = root.querySelectorAll(".carousel-slide");
  var dots = document.querySelectorAll("#carouselDots .carousel-dot");
  if (!slides.length) return;

  var INTERVAL = 5000;
  var current = 0;
  var timer = null;
  var hovering = false;
  var ws = null;
  var live = false;

  function show(i) {
    current = i;
    slides.forEach(function(s, j) { s.classList.toggle("active", j === i); });
    dots.forEach(function(d, j) { d.classList.toggle("active", j === i); });
  }

  // Local state machine, used whenever no server session drives the carousel.
  function go(i) {
    var n = slides.length;
    show(((i % n) + n) % n);
  }
  function stop() {
    if (timer) {
      clearInterval(timer);
      timer = null;
    }
  }
  function start() {
    stop();
    timer = setInterval(function() { go(current + 1); }, INTERVAL);
  }

  function send(msg) {
    if (!live || ws.readyState !== WebSocket.OPEN) return false;
    ws.send(JSON.stringify(msg));
    return true;
  }

  function goLocal() {
    live = false;
    if (!hovering) start();
  }

  if ("WebSocket" in window && /^https?:$/.test(location.protocol)) {
    var slugs = Array.prototype.map.call(slides, function(s) { return s.getAttribute("data-slug"); });
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    try {
      ws = new WebSocket(proto + location.host + "/ws/carousel?slugs=" + encodeURIComponent(slugs.join(",")));
      ws.onopen = function() {
        live = true;
        stop();
        send({type: "goto", index: current});
        if (hovering) send({type: "mouseenter"});
      };
      ws.onmessage = function(ev) {
        var msg = JSON.parse(ev.data);
        if (msg.type === "slide") show(msg.index || 0);
        if (msg.type === "navigate" && msg.url) location.href = msg.url;
      };
      ws.onerror = goLocal;
      ws.onclose = goLocal;
    } catch (e) {
      ws = null;
    }
  }
  start();

  root.addEventListener("mouseenter", function() {
    hovering = true;
    if (!send({type: "mouseenter"})) stop();
  });
  root.addEventListener("mouseleave", function() {
    hovering = false;
    if (!send({type: "mouseleave"})) start();
  });

  var prev = document.getElementById("carouselPrev");
  var next = document.getElementById("carouselNext");
  if (prev) prev.addEventListener("click", function(e) {
    e.stopPropagation();
    if (!send({type: "prev"})) go(current - 1);
  });
  if (next) next.addEventListener("click", function(e) {
    e.stopPropagation();
    if (!send({type: "next"})) go(current + 1);
  });
  dots.forEach(function(d) {
    d.addEventListener("click", function(e) {
      e.stopPropagation();
      var i = +d.getAttribute("data-index");
      if (!send({type: "goto", index: i})) go(i);
    });
  });

  slides.forEach(function(s) {
    s.addEventListener("click", function(e) {
      if (e.target.closest(".carousel-read-more")) return;
      var i = +s.getAttribute("data-index");
      if (send({type: "click", index: i, origin: "slide"})) return;
      var href = s.getAttribute("data-href");
      if (href) location.href = href;
    });
  });
})();
`
