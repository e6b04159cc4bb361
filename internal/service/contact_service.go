package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"zurnaWorkshop/internal/config"
	"zurnaWorkshop/internal/functions"
	"zurnaWorkshop/internal/mailer"
	"zurnaWorkshop/internal/models"
)

// ContactSubjects are the choices offered by the contact form.
var ContactSubjects = []string{
	"Ürün Bilgisi",
	"Sipariş Vermek İstiyorum",
	"Davul-Zurna Ekibi",
	"Özel Sipariş",
	"Diğer",
}

type ContactForm struct {
	Name    string `json:"name" validate:"min=2,max=50"`
	Phone   string `json:"phone" validate:"min=10,max=15"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"min=10,max=500"`
}

// ValidationError maps form fields to the message shown next to them.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("contact form is invalid: %d field(s)", len(e.Fields))
}

type ContactResult struct {
	Success bool          `json:"success"`
	Notice  models.Notice `json:"notice"`
	Form    ContactForm   `json:"form"`
}

// ContactFunction is the serverless endpoint that stores contact messages.
type ContactFunction interface {
	SendContactEmail(ctx context.Context, req functions.ContactRequest) (*functions.ContactResponse, error)
}

type ContactService interface {
	Submit(ctx context.Context, form ContactForm) (*ContactResult, error)
}

type contactService struct {
	relay    mailer.Relay
	function ContactFunction
	relayCfg config.Relay
	validate *validator.Validate
}

func NewContactService(relay mailer.Relay, function ContactFunction, relayCfg config.Relay, validate *validator.Validate) ContactService {
	return &contactService{
		relay:    relay,
		function: function,
		relayCfg: relayCfg,
		validate: validate,
	}
}

// Submit validates the form, then hands the sanitized values to the mail
// relay and the contact function. Both must succeed for the form to be
// cleared; otherwise the entered values come back untouched.
func (s *contactService) Submit(ctx context.Context, form ContactForm) (*ContactResult, error) {
	if err := s.Validate(form); err != nil {
		return &ContactResult{Form: form}, err
	}

	clean := SanitizeContact(form)

	relayErr := s.relay.Send(ctx, s.relayCfg.ServiceID, s.relayCfg.TemplateID, map[string]string{
		"from_name": clean.Name,
		"email":     clean.Email,
		"phone":     clean.Phone,
		"subject":   clean.Subject,
		"message":   clean.Message,
	}, s.relayCfg.PublicKey)
	if relayErr != nil {
		zap.S().Errorw("contact relay failed", "error", relayErr)
	}

	_, fnErr := s.function.SendContactEmail(ctx, functions.ContactRequest{
		Name:    clean.Name,
		Phone:   clean.Phone,
		Email:   clean.Email,
		Subject: clean.Subject,
		Message: clean.Message,
	})
	if fnErr != nil {
		zap.S().Errorw("contact function failed", "error", fnErr)
	}

	if err := errors.Join(relayErr, fnErr); err != nil {
		return &ContactResult{
			Notice: models.Notice{
				Title:       "Mesaj gönderilemedi!",
				Description: "Lütfen daha sonra tekrar deneyin veya telefon ile iletişime geçin.",
				Destructive: true,
			},
			Form: form,
		}, err
	}

	return &ContactResult{
		Success: true,
		Notice: models.Notice{
			Title:       "Mesajınız başarıyla gönderildi!",
			Description: "En kısa sürede dönüş yapacağız.",
		},
		Form: ContactForm{},
	}, nil
}

var contactMessages = map[string]string{
	"Name.min":         "İsim en az 2 karakter olmalıdır",
	"Name.max":         "İsim 50 karakterden fazla olamaz",
	"Phone.min":        "Telefon numarası en az 10 haneli olmalıdır",
	"Phone.max":        "Telefon numarası 15 haneden fazla olamaz",
	"Email.required":   "Geçerli bir email adresi giriniz",
	"Email.email":      "Geçerli bir email adresi giriniz",
	"Subject.required": "Konu seçimi zorunludur",
	"Message.min":      "Mesaj en az 10 karakter olmalıdır",
	"Message.max":      "Mesaj 500 karakterden fazla olamaz",
}

var contactFieldKeys = map[string]string{
	"Name":    "name",
	"Phone":   "phone",
	"Email":   "email",
	"Subject": "subject",
	"Message": "message",
}

func (s *contactService) Validate(form ContactForm) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		key := contactFieldKeys[fe.StructField()]
		if _, seen := fields[key]; seen {
			continue
		}
		msg, ok := contactMessages[fe.StructField()+"."+fe.Tag()]
		if !ok {
			msg = "Geçersiz değer"
		}
		fields[key] = msg
	}

	return &ValidationError{Fields: fields}
}

var phoneDisallowed = regexp.MustCompile(`[^\d+\-\s]`)

// SanitizeContact normalises a validated form before it leaves the server.
func SanitizeContact(form ContactForm) ContactForm {
	return ContactForm{
		Name:    strings.TrimSpace(form.Name),
		Phone:   phoneDisallowed.ReplaceAllString(form.Phone, ""),
		Email:   strings.ToLower(strings.TrimSpace(form.Email)),
		Subject: form.Subject,
		Message: strings.TrimSpace(form.Message),
	}
}
