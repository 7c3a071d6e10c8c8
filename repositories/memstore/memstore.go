// Package memstore holds in-memory implementations of the repository
// interfaces used by the services. They mirror the Mongo repositories'
// error contract (repositories.ErrNotFound, repositories.ErrDuplicate).
package memstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/localxp/localxp_backend/models"
	"github.com/localxp/localxp_backend/repositories"
	"github.com/localxp/localxp_backend/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Tourists struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]models.Tourist
}

func NewTourists() *Tourists {
	return &Tourists{byID: map[primitive.ObjectID]models.Tourist{}}
}

func (m *Tourists) Create(_ context.Context, t *models.Tourist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == t.Email {
			return repositories.ErrDuplicate
		}
	}
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	m.byID[t.ID] = *t
	return nil
}

func (m *Tourists) FindByID(_ context.Context, id primitive.ObjectID) (*models.Tourist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &t, nil
}

func (m *Tourists) FindByEmail(_ context.Context, email string) (*models.Tourist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.byID {
		if t.Email == email {
			return &t, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *Tourists) List(context.Context) ([]models.Tourist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Tourist, 0, len(m.byID))
	for _, t := range m.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Tourists) Update(_ context.Context, t *models.Tourist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[t.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.byID[t.ID] = *t
	return nil
}

func (m *Tourists) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// Providers can be told to fail every Create through CreateErr
type Providers struct {
	mu        sync.Mutex
	byID      map[primitive.ObjectID]models.Provider
	CreateErr error
}

func NewProviders() *Providers {
	return &Providers{byID: map[primitive.ObjectID]models.Provider{}}
}

func (m *Providers) Create(_ context.Context, p *models.Provider) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	for _, existing := range m.byID {
		if existing.Email == p.Email {
			return repositories.ErrDuplicate
		}
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.byID[p.ID] = copyProvider(*p)
	return nil
}

func (m *Providers) FindByID(_ context.Context, id primitive.ObjectID) (*models.Provider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	p = copyProvider(p)
	return &p, nil
}

func (m *Providers) FindByEmail(_ context.Context, email string) (*models.Provider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if p.Email == email {
			p = copyProvider(p)
			return &p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *Providers) List(_ context.Context, approved *bool) ([]models.Provider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Provider{}
	for _, p := range m.byID {
		if approved == nil || p.Approved == *approved {
			out = append(out, copyProvider(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Providers) Update(_ context.Context, p *models.Provider) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[p.ID]; !ok {
		return repositories.ErrNotFound
	}
	for id, existing := range m.byID {
		if id != p.ID && existing.Email == p.Email {
			return repositories.ErrDuplicate
		}
	}
	m.byID[p.ID] = copyProvider(*p)
	return nil
}

func (m *Providers) Approve(_ context.Context, id primitive.ObjectID) (*models.Provider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	p.Approved = true
	m.byID[id] = p
	p = copyProvider(p)
	return &p, nil
}

func (m *Providers) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// Stored returns the provider as persisted, password hash included
func (m *Providers) Stored(id primitive.ObjectID) (models.Provider, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	return copyProvider(p), ok
}

func (m *Providers) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

func copyProvider(p models.Provider) models.Provider {
	p.Photos = append([]string(nil), p.Photos...)
	return p
}

type Admins struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]models.Admin
}

func NewAdmins() *Admins {
	return &Admins{byID: map[primitive.ObjectID]models.Admin{}}
}

func (m *Admins) Create(_ context.Context, a *models.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Username == a.Username {
			return repositories.ErrDuplicate
		}
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	m.byID[a.ID] = *a
	return nil
}

func (m *Admins) FindByID(_ context.Context, id primitive.ObjectID) (*models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &a, nil
}

func (m *Admins) FindByUsername(_ context.Context, username string) (*models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byID {
		if a.Username == username {
			return &a, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *Admins) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

type Bookings struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]models.Booking
}

func NewBookings() *Bookings {
	return &Bookings{byID: map[primitive.ObjectID]models.Booking{}}
}

func (m *Bookings) Create(_ context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	m.byID[b.ID] = *b
	return nil
}

func (m *Bookings) FindByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &b, nil
}

func (m *Bookings) List(_ context.Context, f repositories.BookingFilter) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Booking{}
	for _, b := range m.byID {
		if !f.TouristID.IsZero() && b.TouristID != f.TouristID {
			continue
		}
		if !f.ProviderID.IsZero() && (b.ProviderID == nil || *b.ProviderID != f.ProviderID) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Bookings) SetStatus(_ context.Context, id primitive.ObjectID, status models.BookingStatus) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	b.Status = status
	m.byID[id] = b
	return &b, nil
}

func (m *Bookings) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *Bookings) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

type Contacts struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]models.ContactMessage
}

func NewContacts() *Contacts {
	return &Contacts{byID: map[primitive.ObjectID]models.ContactMessage{}}
}

func (m *Contacts) Create(_ context.Context, msg *models.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	m.byID[msg.ID] = *msg
	return nil
}

func (m *Contacts) List(context.Context) ([]models.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ContactMessage, 0, len(m.byID))
	for _, msg := range m.byID {
		out = append(out, msg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Contacts) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// Files is a utils.FileStorage kept in memory. With FailAfter >= 0 every
// Save after that many successful saves fails.
type Files struct {
	mu        sync.Mutex
	files     map[string][]byte
	saves     int
	FailAfter int
}

var _ utils.FileStorage = (*Files)(nil)

func NewFiles() *Files {
	return &Files{files: map[string][]byte{}, FailAfter: -1}
}

func (m *Files) Save(data []byte, meta utils.FileMeta) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAfter >= 0 && m.saves >= m.FailAfter {
		return "", errors.New("disk full")
	}
	m.saves++
	path := fmt.Sprintf("Uploads/%s/%d-%s", meta.SubDir, m.saves, meta.Filename)
	m.files[path] = data
	return path, nil
}

func (m *Files) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
	return nil
}

func (m *Files) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

func (m *Files) Has(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok
}
