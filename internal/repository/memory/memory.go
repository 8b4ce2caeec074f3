// Package memory provides map-backed repository implementations. They
// serve the service tests and any deployment that runs without postgres.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/huellas-salud/vet-api/internal/model"
	"github.com/huellas-salud/vet-api/internal/repository"
	"github.com/huellas-salud/vet-api/internal/scheduling"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*model.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*model.User)}
}

func (r *UserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	r.users[user.DocumentID] = user
	return nil
}

func (r *UserRepository) GetByDocument(_ context.Context, documentID string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[documentID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (r *UserRepository) ExistsByDocument(_ context.Context, documentID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[documentID]
	return ok, nil
}

func (r *UserRepository) Update(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.DocumentID]; !ok {
		return repository.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	r.users[user.DocumentID] = user
	return nil
}

func (r *UserRepository) Delete(_ context.Context, documentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[documentID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, documentID)
	return nil
}

func (r *UserRepository) List(_ context.Context) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

type PetRepository struct {
	mu   sync.RWMutex
	pets map[string]*model.Pet
}

func NewPetRepository() *PetRepository {
	return &PetRepository{pets: make(map[string]*model.Pet)}
}

func (r *PetRepository) Create(_ context.Context, pet *model.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	pet.CreatedAt = time.Now()
	pet.UpdatedAt = time.Now()
	r.pets[pet.ID] = pet
	return nil
}

func (r *PetRepository) Get(_ context.Context, id string) (*model.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pet, ok := r.pets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return pet, nil
}

func (r *PetRepository) Update(_ context.Context, pet *model.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pets[pet.ID]; !ok {
		return repository.ErrNotFound
	}
	pet.UpdatedAt = time.Now()
	r.pets[pet.ID] = pet
	return nil
}

func (r *PetRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.pets, id)
	return nil
}

func (r *PetRepository) List(_ context.Context) ([]*model.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Pet, 0, len(r.pets))
	for _, p := range r.pets {
		out = append(out, p)
	}
	return out, nil
}

func (r *PetRepository) ListByOwner(_ context.Context, ownerID string) ([]*model.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*model.Pet
	for _, p := range r.pets {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

type ServiceRepository struct {
	mu       sync.RWMutex
	services map[string]*model.Service
}

func NewServiceRepository() *ServiceRepository {
	return &ServiceRepository{services: make(map[string]*model.Service)}
}

func (r *ServiceRepository) Create(_ context.Context, service *model.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	service.CreatedAt = time.Now()
	service.UpdatedAt = time.Now()
	r.services[service.ID] = service
	return nil
}

func (r *ServiceRepository) Get(_ context.Context, id string) (*model.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	service, ok := r.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return service, nil
}

func (r *ServiceRepository) Update(_ context.Context, service *model.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[service.ID]; !ok {
		return repository.ErrNotFound
	}
	service.UpdatedAt = time.Now()
	r.services[service.ID] = service
	return nil
}

func (r *ServiceRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.services, id)
	return nil
}

func (r *ServiceRepository) List(_ context.Context) ([]*model.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, s)
	}
	return out, nil
}

type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*model.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]*model.Product)}
}

func (r *ProductRepository) Create(_ context.Context, product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	r.products[product.ID] = product
	return nil
}

func (r *ProductRepository) Get(_ context.Context, id string) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return product, nil
}

func (r *ProductRepository) Update(_ context.Context, product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return repository.ErrNotFound
	}
	product.UpdatedAt = time.Now()
	r.products[product.ID] = product
	return nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *ProductRepository) List(_ context.Context) ([]*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

type AnnouncementRepository struct {
	mu            sync.RWMutex
	announcements map[string]*model.Announcement
}

func NewAnnouncementRepository() *AnnouncementRepository {
	return &AnnouncementRepository{announcements: make(map[string]*model.Announcement)}
}

func (r *AnnouncementRepository) Create(_ context.Context, announcement *model.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	announcement.CreatedAt = time.Now()
	announcement.UpdatedAt = time.Now()
	r.announcements[announcement.ID] = announcement
	return nil
}

func (r *AnnouncementRepository) Get(_ context.Context, id string) (*model.Announcement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	announcement, ok := r.announcements[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return announcement, nil
}

func (r *AnnouncementRepository) Update(_ context.Context, announcement *model.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.announcements[announcement.ID]; !ok {
		return repository.ErrNotFound
	}
	announcement.UpdatedAt = time.Now()
	r.announcements[announcement.ID] = announcement
	return nil
}

func (r *AnnouncementRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.announcements[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.announcements, id)
	return nil
}

func (r *AnnouncementRepository) List(_ context.Context) ([]*model.Announcement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Announcement, 0, len(r.announcements))
	for _, a := range r.announcements {
		out = append(out, a)
	}
	return out, nil
}

func (r *AnnouncementRepository) ListActive(_ context.Context) ([]*model.Announcement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*model.Announcement
	for _, a := range r.announcements {
		if a.Active {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AnnouncementRepository) DeactivateActivatedBefore(_ context.Context, cutoff time.Time) ([]*model.Announcement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Announcement
	for _, a := range r.announcements {
		if a.Active && a.ActivatedAt != nil && a.ActivatedAt.Before(cutoff) {
			a.Active = false
			a.UpdatedAt = time.Now()
			out = append(out, a)
		}
	}
	return out, nil
}

type InvoiceRepository struct {
	mu       sync.RWMutex
	invoices map[string]*model.Invoice
}

func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{invoices: make(map[string]*model.Invoice)}
}

func (r *InvoiceRepository) Create(_ context.Context, invoice *model.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	invoice.CreatedAt = time.Now()
	invoice.UpdatedAt = time.Now()
	r.invoices[invoice.ID] = invoice
	return nil
}

func (r *InvoiceRepository) Get(_ context.Context, id string) (*model.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	invoice, ok := r.invoices[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return invoice, nil
}

func (r *InvoiceRepository) Update(_ context.Context, invoice *model.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.invoices[invoice.ID]; !ok {
		return repository.ErrNotFound
	}
	invoice.UpdatedAt = time.Now()
	r.invoices[invoice.ID] = invoice
	return nil
}

func (r *InvoiceRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.invoices[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.invoices, id)
	return nil
}

func (r *InvoiceRepository) List(_ context.Context) ([]*model.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Invoice, 0, len(r.invoices))
	for _, i := range r.invoices {
		out = append(out, i)
	}
	return out, nil
}

func (r *InvoiceRepository) ListByClient(_ context.Context, clientID string) ([]*model.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*model.Invoice
	for _, i := range r.invoices {
		if i.ClientID == clientID {
			out = append(out, i)
		}
	}
	return out, nil
}

type ScheduleRepository struct {
	mu        sync.RWMutex
	schedules map[string]*model.Schedule
}

func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{schedules: make(map[string]*model.Schedule)}
}

func (r *ScheduleRepository) Create(_ context.Context, schedule *model.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	schedule.CreatedAt = time.Now()
	schedule.UpdatedAt = time.Now()
	r.schedules[schedule.ID] = schedule
	return nil
}

func (r *ScheduleRepository) Get(_ context.Context, id string) (*model.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	schedule, ok := r.schedules[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return schedule, nil
}

func (r *ScheduleRepository) Update(_ context.Context, schedule *model.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.schedules[schedule.ID]; !ok {
		return repository.ErrNotFound
	}
	schedule.UpdatedAt = time.Now()
	r.schedules[schedule.ID] = schedule
	return nil
}

func (r *ScheduleRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.schedules[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.schedules, id)
	return nil
}

func (r *ScheduleRepository) List(_ context.Context) ([]*model.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Schedule, 0, len(r.schedules))
	for _, s := range r.schedules {
		out = append(out, s)
	}
	return out, nil
}

func (r *ScheduleRepository) ListByVeterinarian(_ context.Context, vetID string) ([]*model.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*model.Schedule
	for _, s := range r.schedules {
		if s.VeterinarianID == vetID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *ScheduleRepository) FindByVeterinarianAndDay(_ context.Context, vetID string, day model.DayOfWeek) (*model.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.schedules {
		if s.VeterinarianID == vetID && s.DayOfWeek == day {
			return s, nil
		}
	}
	return nil, nil
}

func (r *ScheduleRepository) ExistsForDay(_ context.Context, vetID string, day model.DayOfWeek, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.schedules {
		if s.VeterinarianID == vetID && s.DayOfWeek == day && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// AppointmentRepository serializes writes under one mutex and re-checks
// for overlaps before inserting, mirroring the transactional guarantee of
// the postgres implementation.
type AppointmentRepository struct {
	mu           sync.RWMutex
	appointments map[string]*model.Appointment
}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{appointments: make(map[string]*model.Appointment)}
}

func (r *AppointmentRepository) Create(_ context.Context, appointment *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hasOverlap(appointment, "") {
		return repository.ErrConflict
	}
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()
	r.appointments[appointment.ID] = appointment
	return nil
}

func (r *AppointmentRepository) Get(_ context.Context, id string) (*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	appointment, ok := r.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return appointment, nil
}

func (r *AppointmentRepository) Update(_ context.Context, appointment *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[appointment.ID]; !ok {
		return repository.ErrNotFound
	}
	if !appointment.IsCancelled() && r.hasOverlap(appointment, appointment.ID) {
		return repository.ErrConflict
	}
	appointment.UpdatedAt = time.Now()
	r.appointments[appointment.ID] = appointment
	return nil
}

func (r *AppointmentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

func (r *AppointmentRepository) List(_ context.Context) ([]*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Appointment, 0, len(r.appointments))
	for _, a := range r.appointments {
		out = append(out, a)
	}
	return out, nil
}

func (r *AppointmentRepository) ListByOwner(_ context.Context, ownerID string) ([]*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*model.Appointment
	for _, a := range r.appointments {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AppointmentRepository) ListByVeterinarian(_ context.Context, vetID string) ([]*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*model.Appointment
	for _, a := range r.appointments {
		if a.VeterinarianID == vetID && !a.IsCancelled() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AppointmentRepository) ListByVeterinarianAndDate(_ context.Context, vetID string, date time.Time) ([]*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*model.Appointment
	for _, a := range r.appointments {
		y1, m1, d1 := a.StartTime.Date()
		y2, m2, d2 := date.Date()
		if a.VeterinarianID == vetID && y1 == y2 && m1 == m2 && d1 == d2 {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AppointmentRepository) hasOverlap(candidate *model.Appointment, excludeID string) bool {
	for _, a := range r.appointments {
		if a.VeterinarianID != candidate.VeterinarianID || a.IsCancelled() {
			continue
		}
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		if scheduling.Overlaps(a.StartTime, a.EndTime(), candidate.StartTime, candidate.EndTime()) {
			return true
		}
	}
	return false
}
