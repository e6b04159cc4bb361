package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"zurnaWorkshop/internal/models"
	"zurnaWorkshop/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Instrument is one card of the storefront. The storefront is not bound to
// the products table.
type Instrument struct {
	Name        string
	Description string
	Features    []string
	Price       string
	Image       string
}

var storefront = []Instrument{
	{
		Name:        "Zurna",
		Description: "Geleneksel Türk halk müziğinin vazgeçilmez nefesli çalgısı. El işçiliği ile özenle işlenmiş ahşap gövde ve kaliteli kamış ile üretilmektedir.",
		Features:    []string{"El işçiliği ahşap gövde", "Kaliteli doğal kamış", "Geleneksel boyama teknikleri", "Uzun ömürlü kullanım"},
		Price:       "1.500 - 3.000 TL",
		Image:       "/static/zurna.svg",
	},
	{
		Name:        "Balaban",
		Description: "Azerbaycan ve Türk müzik kültürünün önemli çalgılarından biri. Derin ve melodik sesi ile dinleyicileri büyüler.",
		Features:    []string{"Özel seçilmiş ahşap", "Profesyonel kamış sistemi", "Ergonomik tutuş tasarımı", "Zengin ton kalitesi"},
		Price:       "2.000 - 4.000 TL",
		Image:       "/static/balaban.svg",
	},
	{
		Name:        "Mey",
		Description: "Orta Asya kökenli bu güzel çalgı, sıcak ve duygusal tınısı ile halk müziğimizin vazgeçilmez parçasıdır.",
		Features:    []string{"Geleneksel el işçiliği", "Doğal malzemeler", "Özel tuning sistemi", "Taşıma çantası dahil"},
		Price:       "1.800 - 3.500 TL",
		Image:       "/static/mey.svg",
	},
}

type Pages struct {
	templates *template.Template
}

func NewPages() (*Pages, error) {
	funcs := template.FuncMap{"join": strings.Join}
	tmpl, err := template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Pages{templates: tmpl}, nil
}

// Static serves the embedded page assets under /static/.
func (p *Pages) Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// Render executes into a buffer first so a template error never leaves a
// half-written page.
func (p *Pages) Render(w http.ResponseWriter, name string, data interface{}) {
	var buf bytes.Buffer
	if err := p.templates.ExecuteTemplate(&buf, name, data); err != nil {
		zap.S().Errorw("failed to render page", "page", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

type HomePage struct {
	Notices     []models.Notice
	Instruments []Instrument
	Subjects    []string
}

type AuthPage struct {
	Notices []models.Notice
	View    service.AuthView
	Email   string
}

type AdminPage struct {
	Notices  []models.Notice
	User     *models.User
	Products []models.Product
	Catalog  *service.ImageCatalog
}

func (h *Handlers) HomePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	h.Pages.Render(w, "home", HomePage{
		Notices:     h.notices(w, r),
		Instruments: storefront,
		Subjects:    service.ContactSubjects,
	})
}

func (h *Handlers) AuthPage(w http.ResponseWriter, r *http.Request) {
	current := h.Gateway.GetSession(r)

	view := service.View(service.StateOf(current), service.AuthMode(r.URL.Query().Get("mode")))
	if view.Redirect != "" {
		http.Redirect(w, r, view.Redirect, http.StatusSeeOther)
		return
	}

	page := AuthPage{Notices: h.notices(w, r), View: view}
	if current != nil && current.User != nil {
		page.Email = current.User.Email
	}

	h.Pages.Render(w, "auth", page)
}

// AdminPage writes admin markup only after the guard allowed the visit.
func (h *Handlers) AdminPage(w http.ResponseWriter, r *http.Request) {
	decision := h.Guard.Check(r.Context(), h.Gateway.GetSession(r))
	if !decision.Allowed {
		if decision.Notice != nil {
			h.flash(w, r, *decision.Notice)
		}
		http.Redirect(w, r, decision.Redirect, http.StatusSeeOther)
		return
	}

	page := AdminPage{User: decision.User}

	products, err := h.Product.List(r.Context())
	if err != nil {
		zap.S().Errorw("failed to load products", "error", err)
		page.Notices = append(page.Notices, failureNotice("Ürünler yüklenirken hata oluştu: ", err))
	}
	page.Products = products

	catalog, err := h.Image.List(r.Context())
	if err != nil {
		zap.S().Errorw("failed to load images", "error", err)
		page.Notices = append(page.Notices, failureNotice("Resimler yüklenirken hata oluştu: ", err))
		catalog = &service.ImageCatalog{}
	}
	page.Catalog = catalog

	page.Notices = append(h.notices(w, r), page.Notices...)

	h.Pages.Render(w, "admin", page)
}

func (h *Handlers) notices(w http.ResponseWriter, r *http.Request) []models.Notice {
	notices, err := h.Gateway.Sessions.Notices(w, r)
	if err != nil {
		zap.S().Warnw("failed to read notices", "error", err)
	}
	return notices
}
