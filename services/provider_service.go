package services

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/localxp/localxp_backend/models"
	"github.com/localxp/localxp_backend/repositories"
	"github.com/localxp/localxp_backend/utils"
)

const (
	providerUploadDir = "providers"
	maxProviderPhotos = 5
)

// ProviderFiles are the image uploads attached to a provider form
type ProviderFiles struct {
	ProfilePicture []*multipart.FileHeader
	Photos         []*multipart.FileHeader
}

// ProviderService manages provider accounts and their images
type ProviderService struct {
	providers ProviderStore
	files     utils.FileStorage
	notifier  Notifier
	mailer    AdminMailer
}

func NewProviderService(providers ProviderStore, files utils.FileStorage) *ProviderService {
	return &ProviderService{
		providers: providers,
		files:     files,
		notifier:  noopNotifier{},
		mailer:    noopMailer{},
	}
}

// WithNotifications attaches the live feed and mail notices used on signup
func (s *ProviderService) WithNotifications(n Notifier, m AdminMailer) *ProviderService {
	if n != nil {
		s.notifier = n
	}
	if m != nil {
		s.mailer = m
	}
	return s
}

// Register creates a provider from a signup form. Both image fields are
// mandatory and the account starts unapproved.
func (s *ProviderService) Register(ctx context.Context, form models.ProviderForm, files ProviderFiles) (*models.Provider, error) {
	provider, err := s.create(ctx, form, files, true, false)
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyAdmins("provider_registered", "A new provider is waiting for approval", provider)
	body := "Service: " + provider.ServiceName + "\nName: " + provider.FullName + "\nEmail: " + provider.Email
	if err := s.mailer.NotifyAdmin("New provider pending approval", body); err != nil {
		log.Printf("Failed to send provider signup notice: %v", err)
	}
	return provider, nil
}

// Create is the admin variant of Register: images are optional and the
// admin may approve the account straight away.
func (s *ProviderService) Create(ctx context.Context, form models.ProviderForm, files ProviderFiles) (*models.Provider, error) {
	approved := false
	if strings.TrimSpace(form.Approved) != "" {
		v, err := strconv.ParseBool(form.Approved)
		if err != nil {
			return nil, Validation("approved must be true or false")
		}
		approved = v
	}
	return s.create(ctx, form, files, false, approved)
}

func (s *ProviderService) create(ctx context.Context, form models.ProviderForm, files ProviderFiles, requireFiles, approved bool) (*models.Provider, error) {
	if !utils.AllPresent(form.ServiceName, form.FullName, form.Email, form.Contact, form.Category,
		form.Location, form.Price, form.Description, form.Password) {
		return nil, Validation("all fields are required")
	}
	email := utils.NormalizeEmail(form.Email)
	if !utils.IsValidEmail(email) {
		return nil, Validation("invalid email format")
	}
	if !utils.IsValidPassword(form.Password) {
		return nil, Validation("password must be at least %d characters", utils.MinPasswordLength)
	}
	price, err := utils.ParsePrice(form.Price)
	if err != nil {
		return nil, Validation("%s", err.Error())
	}

	if requireFiles {
		if len(files.ProfilePicture) != 1 {
			return nil, Validation("exactly one profile picture is required")
		}
		if len(files.Photos) == 0 {
			return nil, Validation("at least one photo is required")
		}
	}
	if len(files.ProfilePicture) > 1 {
		return nil, Validation("only one profile picture is allowed")
	}
	if len(files.Photos) > maxProviderPhotos {
		return nil, Validation("at most %d photos are allowed", maxProviderPhotos)
	}

	// Every image is read and checked before anything touches the disk.
	profileData, err := readImages(files.ProfilePicture)
	if err != nil {
		return nil, err
	}
	photoData, err := readImages(files.Photos)
	if err != nil {
		return nil, err
	}

	if _, err := s.providers.FindByEmail(ctx, email); err == nil {
		return nil, Validation("email already registered")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, Unexpected("failed to check email", err)
	}

	hashed, err := utils.HashPassword(form.Password)
	if err != nil {
		return nil, Unexpected("failed to hash password", err)
	}

	now := time.Now()
	provider := &models.Provider{
		ServiceName: utils.SanitizeInput(form.ServiceName),
		FullName:    utils.SanitizeInput(form.FullName),
		Email:       email,
		Contact:     utils.SanitizeInput(form.Contact),
		Category:    utils.SanitizeInput(form.Category),
		Location:    utils.SanitizeInput(form.Location),
		Price:       price,
		Description: utils.SanitizeInput(form.Description),
		Password:    hashed,
		Approved:    approved,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var written []string
	if len(profileData) == 1 {
		path, err := s.files.Save(profileData[0].data, profileData[0].meta)
		if err != nil {
			return nil, Unexpected("failed to store profile picture", err)
		}
		written = append(written, path)
		provider.ProfilePicture = path
	}
	paths, err := s.saveAll(photoData)
	written = append(written, paths...)
	if err != nil {
		s.removeAll(written)
		return nil, Unexpected("failed to store photos", err)
	}
	provider.Photos = paths

	if err := s.providers.Create(ctx, provider); err != nil {
		s.removeAll(written)
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, Validation("email already registered")
		}
		return nil, Unexpected("failed to create provider", err)
	}

	provider.Password = ""
	return provider, nil
}

// List returns providers with passwords removed. A nil approved lists all.
func (s *ProviderService) List(ctx context.Context, approved *bool) ([]models.Provider, error) {
	providers, err := s.providers.List(ctx, approved)
	if err != nil {
		return nil, Unexpected("failed to list providers", err)
	}
	for i := range providers {
		providers[i].Password = ""
	}
	return providers, nil
}

// GetApproved returns a provider visible to the public
func (s *ProviderService) GetApproved(ctx context.Context, id string) (*models.Provider, error) {
	oid, ok := utils.ParseObjectID(id)
	if !ok {
		return nil, Validation("invalid provider id")
	}
	provider, err := s.providers.FindByID(ctx, oid)
	if errors.Is(err, repositories.ErrNotFound) || (err == nil && !provider.Approved) {
		return nil, NotFound("provider not found")
	}
	if err != nil {
		return nil, Unexpected("failed to load provider", err)
	}
	provider.Password = ""
	return provider, nil
}

// Update merges the supplied fields into the stored provider. Image fields
// replace the stored paths only when new files were sent.
func (s *ProviderService) Update(ctx context.Context, id string, update models.ProviderUpdate, files ProviderFiles) (*models.Provider, error) {
	oid, ok := utils.ParseObjectID(id)
	if !ok {
		return nil, Validation("invalid provider id")
	}
	if len(files.ProfilePicture) > 1 {
		return nil, Validation("only one profile picture is allowed")
	}
	if len(files.Photos) > maxProviderPhotos {
		return nil, Validation("at most %d photos are allowed", maxProviderPhotos)
	}

	provider, err := s.providers.FindByID(ctx, oid)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, NotFound("provider not found")
	}
	if err != nil {
		return nil, Unexpected("failed to load provider", err)
	}

	if err := s.applyUpdate(ctx, provider, update); err != nil {
		return nil, err
	}

	profileData, err := readImages(files.ProfilePicture)
	if err != nil {
		return nil, err
	}
	photoData, err := readImages(files.Photos)
	if err != nil {
		return nil, err
	}

	var written, replaced []string
	if len(profileData) == 1 {
		path, err := s.files.Save(profileData[0].data, profileData[0].meta)
		if err != nil {
			return nil, Unexpected("failed to store profile picture", err)
		}
		written = append(written, path)
		if provider.ProfilePicture != "" {
			replaced = append(replaced, provider.ProfilePicture)
		}
		provider.ProfilePicture = path
	}
	if len(photoData) > 0 {
		paths, err := s.saveAll(photoData)
		written = append(written, paths...)
		if err != nil {
			s.removeAll(written)
			return nil, Unexpected("failed to store photos", err)
		}
		replaced = append(replaced, provider.Photos...)
		provider.Photos = paths
	}

	provider.UpdatedAt = time.Now()
	if err := s.providers.Update(ctx, provider); err != nil {
		s.removeAll(written)
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, Validation("email already registered")
		}
		return nil, Unexpected("failed to update provider", err)
	}
	s.removeAll(replaced)

	provider.Password = ""
	return provider, nil
}

func (s *ProviderService) applyUpdate(ctx context.Context, p *models.Provider, u models.ProviderUpdate) error {
	setText := func(dst *string, v *string) {
		if v != nil && strings.TrimSpace(*v) != "" {
			*dst = utils.SanitizeInput(*v)
		}
	}
	setText(&p.ServiceName, u.ServiceName)
	setText(&p.FullName, u.FullName)
	setText(&p.Contact, u.Contact)
	setText(&p.Category, u.Category)
	setText(&p.Location, u.Location)
	setText(&p.Description, u.Description)

	if u.Email != nil && strings.TrimSpace(*u.Email) != "" {
		email := utils.NormalizeEmail(*u.Email)
		if !utils.IsValidEmail(email) {
			return Validation("invalid email format")
		}
		if email != p.Email {
			existing, err := s.providers.FindByEmail(ctx, email)
			if err == nil && existing.ID != p.ID {
				return Validation("email already registered")
			}
			if err != nil && !errors.Is(err, repositories.ErrNotFound) {
				return Unexpected("failed to check email", err)
			}
			p.Email = email
		}
	}
	if u.Price != nil && strings.TrimSpace(*u.Price) != "" {
		price, err := utils.ParsePrice(*u.Price)
		if err != nil {
			return Validation("%s", err.Error())
		}
		p.Price = price
	}
	if u.Approved != nil && strings.TrimSpace(*u.Approved) != "" {
		approved, err := strconv.ParseBool(*u.Approved)
		if err != nil {
			return Validation("approved must be true or false")
		}
		p.Approved = approved
	}
	// Short passwords are ignored rather than rejected on update.
	if u.Password != nil && utils.IsValidPassword(*u.Password) {
		hashed, err := utils.HashPassword(*u.Password)
		if err != nil {
			return Unexpected("failed to hash password", err)
		}
		p.Password = hashed
	}
	return nil
}

// Approve marks a provider as approved, making it bookable and able to log in
func (s *ProviderService) Approve(ctx context.Context, id string) (*models.Provider, error) {
	oid, ok := utils.ParseObjectID(id)
	if !ok {
		return nil, Validation("invalid provider id")
	}
	provider, err := s.providers.Approve(ctx, oid)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, NotFound("provider not found")
	}
	if err != nil {
		return nil, Unexpected("failed to approve provider", err)
	}
	provider.Password = ""
	return provider, nil
}

// Delete removes a provider and its stored images
func (s *ProviderService) Delete(ctx context.Context, id string) error {
	oid, ok := utils.ParseObjectID(id)
	if !ok {
		return Validation("invalid provider id")
	}
	provider, err := s.providers.FindByID(ctx, oid)
	if errors.Is(err, repositories.ErrNotFound) {
		return NotFound("provider not found")
	}
	if err != nil {
		return Unexpected("failed to load provider", err)
	}
	if err := s.providers.Delete(ctx, oid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NotFound("provider not found")
		}
		return Unexpected("failed to delete provider", err)
	}

	paths := append([]string{}, provider.Photos...)
	if provider.ProfilePicture != "" {
		paths = append(paths, provider.ProfilePicture)
	}
	s.removeAll(paths)
	return nil
}

type imageUpload struct {
	data []byte
	meta utils.FileMeta
}

func readImages(headers []*multipart.FileHeader) ([]imageUpload, error) {
	uploads := make([]imageUpload, 0, len(headers))
	for _, fh := range headers {
		data, err := utils.ReadImage(fh)
		if err != nil {
			if errors.Is(err, utils.ErrFileTooLarge) || errors.Is(err, utils.ErrUnsupportedImage) || errors.Is(err, utils.ErrCorruptImage) {
				return nil, &AppError{Kind: KindValidation, Message: "invalid image upload", Details: fh.Filename + ": " + err.Error()}
			}
			return nil, Unexpected("failed to read upload", err)
		}
		uploads = append(uploads, imageUpload{
			data: data,
			meta: utils.FileMeta{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				SubDir:      providerUploadDir,
			},
		})
	}
	return uploads, nil
}

func (s *ProviderService) saveAll(uploads []imageUpload) ([]string, error) {
	paths := make([]string, 0, len(uploads))
	for _, u := range uploads {
		path, err := s.files.Save(u.data, u.meta)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (s *ProviderService) removeAll(paths []string) {
	for _, p := range paths {
		if err := s.files.Remove(p); err != nil {
			log.Printf("Failed to remove upload %s: %v", p, err)
		}
	}
}
