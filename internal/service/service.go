package service

import (
	"github.com/go-playground/validator/v10"

	"zurnaWorkshop/internal/config"
	"zurnaWorkshop/internal/gateway"
	"zurnaWorkshop/internal/mailer"
)

type Service struct {
	AuthFlow AuthFlowService
	Guard    AccessGuard
	Product  ProductService
	Image    ImageService
	Contact  ContactService
	Tables   TablesService
}

func NewService(client *gateway.Client, relay mailer.Relay, function ContactFunction, cfg *config.Config, validate *validator.Validate) *Service {
	return &Service{
		AuthFlow: NewAuthFlowService(client.Auth, cfg.BaseURL),
		Guard:    NewAccessGuard(client.Tables.Role),
		Product:  NewProductService(client.Tables.Product),
		Image:    NewImageService(client.Tables.Product, client.Tables.Image, client.Storage),
		Contact:  NewContactService(relay, function, cfg.Relay, validate),
		Tables:   NewTablesService(client.Tables.Tables),
	}
}
