package panel

// Templates are Go strings with {{define}} blocks; "results-panel" is the entry point.

const skeletonTemplate = `{{define "card-skeleton"}}<div class="card-skeleton" aria-hidden="true">
  <div class="card-skeleton-cover"></div>
  <div class="card-skeleton-body">
    <div class="card-skeleton-line card-skeleton-title"></div>
    <div class="card-skeleton-line card-skeleton-author"></div>
    <div class="card-skeleton-meta">
      <div class="card-skeleton-line card-skeleton-rating"></div>
      <div class="card-skeleton-line card-skeleton-year"></div>
    </div>
  </div>
</div>{{end}}`

const actionTemplate = `{{define "action"}}{{$a := .Action}}{{if $a.IsPost}}<form method="POST" action="{{$a.Href}}" class="{{.Class}}-form"><button type="submit" class="{{.Class}}">{{.Label}}</button></form>{{else}}<a href="{{$a.Href}}" class="{{.Class}}" role="button"{{if $a.Fragment}} h-get="{{$a.Fragment}}" h-target="#results" h-swap="inner" h-push-url="{{$a.Href}}"{{end}}>{{.Label}}</a>{{end}}{{end}}`

const panelTemplate = `{{define "results-panel"}}<section class="results-panel" data-view="{{.Mode}}"{{if or .Skeletons .TrailingSkeletons}} aria-busy="true"{{end}}>
{{if .Skeletons}}
  <div class="book-grid">
  {{range seq .Skeletons}}{{template "card-skeleton"}}
  {{end}}
  </div>
{{else if .NoResults}}
  <div class="empty-state no-results">
    <div class="empty-state-icon" aria-hidden="true">🔍</div>
    <h3 class="empty-state-title">No books found</h3>
    <p class="empty-state-message">We couldn't find any books matching "<span class="search-term">{{.NoResults.Query}}</span>". Try different keywords or explore our suggestions below.</p>
    <div class="search-tips">
      <h4><span aria-hidden="true">✨</span> Search Tips</h4>
      <ul>
      {{range .NoResults.Tips}}<li class="search-tip">{{.}}</li>
      {{end}}
      </ul>
    </div>
  </div>
{{else if .Empty}}
  <div class="empty-state empty-initial">
    <div class="empty-state-icon" aria-hidden="true">📖</div>
    <h3 class="empty-state-title">Discover Amazing Books</h3>
    <p class="empty-state-message">Search for any book, author, or topic to start exploring millions of books from around the world.</p>
    <div class="suggestions">
    {{range .Empty.Suggestions}}{{if .Action}}{{template "action" (control .Action "suggestion-chip" .Label)}}{{else}}<button type="button" class="suggestion-chip" data-term="{{.Label}}">{{.Label}}</button>{{end}}
    {{end}}
    </div>
  </div>
{{else}}
  {{with .Header}}
  <header class="results-header">
    <p class="results-found"><span aria-hidden="true">🔍</span> Found {{count .Found}} books</p>
    <p class="results-query">Search results for "<span class="search-term">{{.Query}}</span>"</p>
    {{if .ShowingFirst}}<p class="results-showing">Showing first {{.ShowingFirst}} results</p>{{end}}
  </header>
  {{end}}
  <div class="book-grid">
  {{range .Cards}}{{card .}}
  {{end}}
  </div>
  {{if .TrailingSkeletons}}
  <div class="book-grid loading-more">
  {{range seq .TrailingSkeletons}}{{template "card-skeleton"}}
  {{end}}
  </div>
  {{else if .LoadMore}}
  <div class="load-more">{{template "action" (control .LoadMore "load-more-btn" "Load More Books")}}</div>
  {{else if .EndOfResults}}
  <div class="end-of-results">
    <p>🎉 You've seen all the results!</p>
    <p class="end-of-results-hint">Try a different search term to discover more books.</p>
  </div>
  {{end}}
{{end}}
</section>{{end}}`
