package handlers

import (
	"github.com/go-playground/validator/v10"

	"zurnaWorkshop/internal/config"
	"zurnaWorkshop/internal/gateway"
	"zurnaWorkshop/internal/repository"
	"zurnaWorkshop/internal/service"
)

type Handlers struct {
	Gateway  *gateway.Client
	AuthFlow service.AuthFlowService
	Guard    service.AccessGuard
	Product  service.ProductService
	Image    service.ImageService
	Contact  service.ContactService
	Tables   service.TablesService
	Messages repository.MessageRepository
	Pages    *Pages
	Cfg      *config.Config
	Validate *validator.Validate
}

func NewHandlers(client *gateway.Client, services *service.Service, pages *Pages, cfg *config.Config, validate *validator.Validate) *Handlers {
	return &Handlers{
		Gateway:  client,
		AuthFlow: services.AuthFlow,
		Guard:    services.Guard,
		Product:  services.Product,
		Image:    services.Image,
		Contact:  services.Contact,
		Tables:   services.Tables,
		Messages: client.Tables.Message,
		Pages:    pages,
		Cfg:      cfg,
		Validate: validate,
	}
}
