package web

const pageTemplates = `{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.}} - shelf</title>
  <link rel="stylesheet" href="/static/shelf.css">
  <script src="/static/shelf.js" defer></script>
</head>
<body>
  <header class="site-header">
    <a href="/" class="site-name">📚 shelf</a>
  </header>
{{end}}

{{define "foot"}}
</body>
</html>{{end}}

{{define "shell"}}{{template "head" (or .Query "Search books")}}
  <main class="container">
    <form action="/" method="GET" class="search-form" role="search">
      <label for="search-input" class="sr-only">Search books</label>
      <input id="search-input" type="search" name="q" value="{{.Query}}" placeholder="Search for any book, author, or topic" autocomplete="off">
      <button type="submit" class="search-btn">Search</button>
    </form>
    <div id="results"{{with .Fragment}} h-get="{{.}}" h-trigger="load" h-swap="inner"{{end}}>
      {{.Panel}}
    </div>
    <aside id="preview" class="preview-pane" aria-live="polite"></aside>
  </main>
{{template "foot"}}{{end}}

{{define "preview-body"}}<article class="book-preview-full" data-id="{{.Book.ID}}">
  {{with .Book.CoverURL}}<img src="{{.}}" alt="" class="preview-cover">{{end}}
  <h2 class="preview-title">{{.Book.Title}}</h2>
  <p class="preview-authors">{{authors .Book}}</p>
  {{with .Book.Year}}<p class="preview-year">{{.}}</p>{{end}}
  {{with .Description}}<div class="preview-description">{{.}}</div>{{end}}
  {{with .Book.Download}}<p class="preview-file"><code>{{.}}</code></p>{{end}}
</article>{{end}}

{{define "preview-page"}}{{template "head" .Book.Title}}
  <main class="container">
    <p><a href="/" class="back-link">← Back to search</a></p>
    {{template "preview-body" .}}
  </main>
{{template "foot"}}{{end}}
`
