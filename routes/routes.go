package routes

import (
	"github.com/gorilla/mux"

	"github.com/dcode-github/imobiliaria/backend/cache"
	"github.com/dcode-github/imobiliaria/backend/controllers"
	"github.com/dcode-github/imobiliaria/backend/lockout"
	"github.com/dcode-github/imobiliaria/backend/middleware"
	"github.com/dcode-github/imobiliaria/backend/notify"
	"github.com/dcode-github/imobiliaria/backend/store"
	"github.com/dcode-github/imobiliaria/backend/utils"
)

type Deps struct {
	Store    *store.Store
	Catalog  *cache.Catalog
	Images   controllers.ImageStore
	Notifier notify.LeadNotifier
	Verifier utils.CredentialVerifier
	Issuer   *utils.TokenIssuer
	Attempts *lockout.Attempts
}

func Routes(router *mux.Router, d Deps) {
	router.Use(middleware.RequestLogger)
	router.Use(middleware.WithStore(d.Store))

	router.HandleFunc("/healthz", controllers.Health()).Methods("GET")
	router.HandleFunc("/images/{name}", controllers.ServeImage(d.Images)).Methods("GET")

	// Auth routes
	router.HandleFunc("/auth/login", controllers.LoginAdmin(d.Verifier, d.Issuer, d.Attempts)).Methods("POST")

	// Public site
	public := router.PathPrefix("/api").Subrouter()
	public.HandleFunc("/state", controllers.GetPublicState(d.Catalog)).Methods("GET")
	public.HandleFunc("/properties", controllers.ListProperties(d.Catalog)).Methods("GET")
	public.HandleFunc("/properties/{id}", controllers.GetProperty()).Methods("GET")
	public.HandleFunc("/properties/{id}/whatsapp", controllers.PropertyWhatsApp()).Methods("GET")
	public.HandleFunc("/whatsapp", controllers.ContactWhatsApp()).Methods("GET")
	public.HandleFunc("/leads", controllers.CreateLead(d.Notifier)).Methods("POST")

	// Routes that require an admin session
	router.Handle("/auth/logout", middleware.AdminAuth(d.Issuer)(controllers.LogoutAdmin())).Methods("POST")

	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(d.Issuer))

	admin.HandleFunc("/state", controllers.AdminState()).Methods("GET")
	admin.HandleFunc("/dashboard", controllers.Dashboard()).Methods("GET")

	admin.HandleFunc("/properties", controllers.CreateProperty(d.Catalog)).Methods("POST")
	admin.HandleFunc("/properties/{id}", controllers.UpdateProperty(d.Catalog)).Methods("PUT")
	admin.HandleFunc("/properties/{id}", controllers.DeleteProperty(d.Catalog)).Methods("DELETE")

	admin.HandleFunc("/regions", controllers.CreateRegion(d.Catalog)).Methods("POST")
	admin.HandleFunc("/regions/{id}", controllers.DeleteRegion(d.Catalog)).Methods("DELETE")

	admin.HandleFunc("/banners/{group}", controllers.ReplaceBanners(d.Catalog)).Methods("PUT")

	admin.HandleFunc("/settings/site", controllers.UpdateSiteSettings(d.Catalog)).Methods("PUT")
	admin.HandleFunc("/settings/financiamento", controllers.UpdateFinanciamento(d.Catalog)).Methods("PUT")
	admin.HandleFunc("/settings/prova-social", controllers.UpdateProvaSocial(d.Catalog)).Methods("PUT")
	admin.HandleFunc("/settings/localizacao", controllers.UpdateLocalizacao(d.Catalog)).Methods("PUT")

	admin.HandleFunc("/leads", controllers.ListLeads()).Methods("GET")
	admin.HandleFunc("/leads/{id}", controllers.DeleteLead()).Methods("DELETE")

	admin.HandleFunc("/uploads", controllers.UploadImage(d.Images)).Methods("POST")
}
