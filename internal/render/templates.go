package render

import "html/template"

var templates = template.Must(template.New("render").Funcs(template.FuncMap{
	"formatDate": FormatDate,
}).Parse(templateSource))

const templateSource = `
{{define "card"}}<article class="post-card">
  {{if .Post.Image}}<a href="{{.URL}}" class="post-card-image"><img src="{{.Post.Image}}" alt="{{.Post.Title}}" loading="lazy"></a>{{end}}
  <div class="post-card-content">
    <span class="post-category">{{.Post.Category}}</span>
    <time class="post-date" datetime="{{.Post.Date}}">{{formatDate .Post.Date}}</time>
    <h2 class="post-title"><a href="{{.URL}}">{{.Post.Title}}</a></h2>
    <p class="post-excerpt">{{.Excerpt}}</p>
    <a href="{{.URL}}" class="read-more">Read More</a>
  </div>
</article>
{{end}}

{{define "grid"}}{{range .}}{{template "card" .}}{{else}}<p class="no-posts">No posts found.</p>{{end}}{{end}}

{{define "pagination"}}{{range .}}{{if eq .Kind "prev"}}<a class="pagination-btn pagination-prev" href="{{.Href}}" rel="prev">&laquo; Previous</a>
{{else if eq .Kind "next"}}<a class="pagination-btn pagination-next" href="{{.Href}}" rel="next">Next &raquo;</a>
{{else if eq .Kind "ellipsis"}}<span class="pagination-ellipsis">&hellip;</span>
{{else if .Active}}<span class="pagination-btn active" aria-current="page">{{.Page}}</span>
{{else}}<a class="pagination-btn" href="{{.Href}}">{{.Page}}</a>
{{end}}{{end}}{{end}}

{{define "slides"}}{{range $i, $s := .}}<div class="carousel-slide{{if eq $i 0}} active{{end}}" data-index="{{$i}}" data-slug="{{$s.Post.Slug}}" data-href="{{$s.URL}}">
  {{if $s.Post.Image}}<img class="carousel-image" src="{{$s.Post.Image}}" alt="{{$s.Post.Title}}">{{end}}
  <div class="carousel-content">
    <span class="carousel-category">{{$s.Post.Category}}</span>
    <h2 class="carousel-title">{{$s.Post.Title}}</h2>
    <p class="carousel-excerpt">{{$s.Excerpt}}</p>
    <a href="{{$s.URL}}" class="carousel-read-more">Read More</a>
  </div>
</div>
{{end}}{{end}}

{{define "dots"}}{{range $i, $s := .}}<button type="button" class="carousel-dot{{if eq $i 0}} active{{end}}" data-index="{{$i}}" aria-label="Go to slide {{$i}}"></button>{{end}}{{end}}

{{define "ad"}}<div class="ad-container ad-{{.}}" data-ad-slot="{{.}}"></div>{{end}}

{{define "post"}}<article class="post">
  <header class="post-header">
    <h1 class="post-title">{{.Post.Title}}</h1>
    <div class="post-meta">
      <span class="post-category">{{.Post.Category}}</span>
      <time class="post-date" datetime="{{.Post.Date}}">{{formatDate .Post.Date}}</time>
    </div>
  </header>
  {{if .Post.Image}}<img class="post-featured-image" src="{{.Post.Image}}" alt="{{.Post.Title}}">{{end}}
  <div class="post-body" data-slug="{{.Post.Slug}}">
    {{range .Paragraphs}}<p>{{.Text}}</p>
    {{if .AdAfter}}{{template "ad" "in-content"}}
    {{end}}{{end}}
    {{with .Ingredients}}<section class="post-ingredients">
      <h2>Ingredients</h2>
      <ul>{{range .}}<li>{{.}}</li>{{end}}</ul>
    </section>{{end}}
    {{with .Steps}}<section class="post-steps">
      <h2>Instructions</h2>
      <ol>{{range .}}<li>{{.}}</li>{{end}}</ol>
    </section>{{end}}
    {{template "ad" "end-of-content"}}
  </div>
</article>
{{end}}

{{define "related"}}{{range .}}<article class="related-card">
  {{if .Post.Image}}<a href="{{.URL}}"><img src="{{.Post.Image}}" alt="{{.Post.Title}}" loading="lazy"></a>{{end}}
  <span class="post-category">{{.Post.Category}}</span>
  <h3><a href="{{.URL}}">{{.Post.Title}}</a></h3>
</article>
{{end}}{{end}}

{{define "categories"}}{{range .}}<li><a href="#{{.Anchor}}">{{.Name}} <span class="count">({{.Count}})</span></a></li>
{{end}}{{end}}

{{define "recent"}}{{range .}}<li><a href="{{.URL}}">{{.Post.Title}}</a><time datetime="{{.Post.Date}}">{{formatDate .Post.Date}}</time></li>
{{end}}{{end}}

{{define "error"}}<div class="error-message">
  <p>{{.Message}}</p>
  {{if .Path}}<p class="error-path">Attempted path: <code>{{.Path}}</code></p>{{end}}
</div>
{{end}}
`
