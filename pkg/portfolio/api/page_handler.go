package api

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tendant/simple-portfolio/pkg/portfolio"
	"github.com/tendant/simple-portfolio/pkg/portfolio/view"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// viewportHeader is the client hint carrying the viewport width.
const viewportHeader = "Sec-CH-Viewport-Width"

// PageHandler renders the portfolio page
type PageHandler struct {
	provider  portfolio.Provider
	siteTitle string
}

// NewPageHandler creates a new page handler
func NewPageHandler(provider portfolio.Provider, siteTitle string) *PageHandler {
	return &PageHandler{provider: provider, siteTitle: siteTitle}
}

// pageState is the page state carried in the query string.
type pageState struct {
	tab   view.Tab
	dark  bool
	tile  int
	slide int
}

func (s pageState) href() string {
	v := url.Values{}
	if s.tab == view.TabVideos {
		v.Set("view", string(view.TabVideos))
	}
	if s.dark {
		v.Set("dark", "1")
	}
	if s.tile >= 0 {
		v.Set("tile", strconv.Itoa(s.tile))
		if s.slide >= 0 {
			v.Set("slide", strconv.Itoa(s.slide))
		}
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

type tabLink struct {
	Label  string
	Href   string
	Active bool
}

type tileView struct {
	Src     string
	Title   string
	Index   int
	Href    string
	Hovered bool
}

type thumbView struct {
	Src    string
	Href   string
	Active bool
}

type lightboxView struct {
	Caption    string
	Src        string
	Title      string
	PrevHref   string
	NextHref   string
	CloseHref  string
	Thumbnails []thumbView
}

type pageView struct {
	SiteTitle    string
	Dark         bool
	DarkHref     string
	Tabs         []tabLink
	ShowPhotos   bool
	PhotoColumns [][]tileView
	VideoColumns [][]portfolio.VideoProject
	Lightbox     *lightboxView
}

// Page renders the portfolio. Query parameters view, dark, hover, tile and
// slide carry the page state. Unknown or out-of-range values are ignored
// so the page always renders.
func (h *PageHandler) Page(w http.ResponseWriter, r *http.Request) {
	bundle := h.provider.FetchAllContent(r.Context())
	page := view.NewPage(bundle)
	state := applyQuery(r, page)

	data := h.buildView(page, state, view.Columns(viewportWidth(r)))

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		slog.Error("Failed to render page", "err", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Accept-CH", viewportHeader)
	w.Header().Set("Vary", viewportHeader)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func applyQuery(r *http.Request, page *view.Page) pageState {
	q := r.URL.Query()
	state := pageState{tab: view.TabPhotos, tile: -1, slide: -1}

	if tab, err := view.ParseTab(q.Get("view")); err == nil {
		page.SetTab(tab)
		state.tab = tab
	} else {
		slog.Debug("Ignoring view parameter", "view", q.Get("view"), "err", err)
	}

	if dark, _ := strconv.ParseBool(q.Get("dark")); dark {
		page.ToggleDark()
		state.dark = true
	}

	if page.Tab() != view.TabPhotos {
		return state
	}
	if hover, err := strconv.Atoi(q.Get("hover")); err == nil {
		if err := page.Hover(hover); err != nil {
			slog.Debug("Ignoring hover parameter", "hover", hover, "err", err)
		}
	}

	tile, err := strconv.Atoi(q.Get("tile"))
	if err != nil {
		return state
	}
	if err := page.OpenTile(tile); err != nil {
		slog.Debug("Ignoring tile parameter", "tile", tile, "err", err)
		return state
	}
	state.tile = tile

	if slide, err := strconv.Atoi(q.Get("slide")); err == nil {
		if err := page.Lightbox().Navigate(slide); err != nil {
			slog.Debug("Ignoring slide parameter", "slide", slide, "err", err)
		}
	}
	state.slide = page.Lightbox().Index()
	return state
}

func (h *PageHandler) buildView(page *view.Page, state pageState, cols int) pageView {
	base := pageState{tab: state.tab, dark: state.dark, tile: -1, slide: -1}

	data := pageView{
		SiteTitle:  h.siteTitle,
		Dark:       page.Dark(),
		ShowPhotos: page.Tab() == view.TabPhotos,
	}

	darkState := base
	darkState.dark = !state.dark
	darkState.tile, darkState.slide = state.tile, state.slide
	data.DarkHref = darkState.href()

	for _, t := range []view.Tab{view.TabPhotos, view.TabVideos} {
		s := base
		s.tab = t
		data.Tabs = append(data.Tabs, tabLink{Label: t.Label(), Href: s.href(), Active: t == page.Tab()})
	}

	if data.ShowPhotos {
		tiles := page.Tiles()
		views := make([]tileView, len(tiles))
		for i, t := range tiles {
			s := base
			s.tile = i
			views[i] = tileView{
				Src:     t.Src,
				Title:   t.Project.Title,
				Index:   t.Index,
				Href:    s.href(),
				Hovered: i == page.Hovered(),
			}
		}
		data.PhotoColumns = view.Distribute(views, cols)
	} else {
		data.VideoColumns = view.Distribute(page.Bundle().VideoProjects, cols)
	}

	lb := page.Lightbox()
	if !lb.IsOpen() {
		return data
	}

	at := func(slide int) string {
		s := base
		s.tile, s.slide = state.tile, slide
		return s.href()
	}
	lv := &lightboxView{
		Caption:   lb.Caption(),
		Src:       lb.Current().Src,
		Title:     lb.Title(),
		PrevHref:  at(lb.Prev()),
		NextHref:  at(lb.Next()),
		CloseHref: base.href(),
	}
	for i, s := range lb.Slides() {
		lv.Thumbnails = append(lv.Thumbnails, thumbView{Src: s.Src, Href: at(i), Active: i == lb.Index()})
	}
	data.Lightbox = lv
	return data
}

func viewportWidth(r *http.Request) int {
	v := r.Header.Get(viewportHeader)
	if v == "" {
		v = r.Header.Get("Viewport-Width")
	}
	w, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return w
}
