package services

import (
	"context"

	"github.com/localxp/localxp_backend/models"
	"github.com/localxp/localxp_backend/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TouristStore is implemented by repositories.TouristRepository
type TouristStore interface {
	Create(ctx context.Context, tourist *models.Tourist) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tourist, error)
	FindByEmail(ctx context.Context, email string) (*models.Tourist, error)
	List(ctx context.Context) ([]models.Tourist, error)
	Update(ctx context.Context, tourist *models.Tourist) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProviderStore is implemented by repositories.ProviderRepository
type ProviderStore interface {
	Create(ctx context.Context, provider *models.Provider) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Provider, error)
	FindByEmail(ctx context.Context, email string) (*models.Provider, error)
	List(ctx context.Context, approved *bool) ([]models.Provider, error)
	Update(ctx context.Context, provider *models.Provider) error
	Approve(ctx context.Context, id primitive.ObjectID) (*models.Provider, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// AdminStore is implemented by repositories.AdminRepository
type AdminStore interface {
	Create(ctx context.Context, admin *models.Admin) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
	FindByUsername(ctx context.Context, username string) (*models.Admin, error)
}

// BookingStore is implemented by repositories.BookingRepository
type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	List(ctx context.Context, filter repositories.BookingFilter) ([]models.Booking, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) (*models.Booking, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ContactStore is implemented by repositories.ContactRepository
type ContactStore interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context) ([]models.ContactMessage, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Notifier pushes live events to connected admin dashboards
type Notifier interface {
	NotifyAdmins(eventType, message string, data interface{})
}

// AdminMailer sends plain-text notices to the admin mailbox
type AdminMailer interface {
	NotifyAdmin(subject, body string) error
}

type noopNotifier struct{}

func (noopNotifier) NotifyAdmins(string, string, interface{}) {}

type noopMailer struct{}

func (noopMailer) NotifyAdmin(string, string) error { return nil }
