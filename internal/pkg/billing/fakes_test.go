package billing

import (
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ManuelReschke/AdyenBridge/app/models"
)

type fakeRepository struct {
	agreements    map[string]*models.BillingAgreement
	notifications map[string]*models.NotificationEvent
	processed     map[uint]string
	nextID        uint
	upsertErr     error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		agreements:    map[string]*models.BillingAgreement{},
		notifications: map[string]*models.NotificationEvent{},
		processed:     map[uint]string{},
	}
}

func agreementKey(customerID uint, ref string) string {
	return fmt.Sprintf("%d|%s", customerID, ref)
}

func (f *fakeRepository) UpsertAgreement(a *models.BillingAgreement) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	key := agreementKey(a.CustomerID, a.ReferenceID)
	if existing, ok := f.agreements[key]; ok {
		a.ID = existing.ID
	} else {
		f.nextID++
		a.ID = f.nextID
	}
	stored := *a
	f.agreements[key] = &stored
	return nil
}

func (f *fakeRepository) GetAgreement(customerID uint, ref string) (*models.BillingAgreement, error) {
	a, ok := f.agreements[agreementKey(customerID, ref)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *a
	return &out, nil
}

func (f *fakeRepository) ListAgreementsByCustomer(customerID uint) ([]models.BillingAgreement, error) {
	var out []models.BillingAgreement
	for _, a := range f.agreements {
		if a.CustomerID == customerID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeRepository) UpdateAgreementStatus(id uint, status string) error {
	for _, a := range f.agreements {
		if a.ID == id {
			a.Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepository) CreateNotificationIfNotExists(e *models.NotificationEvent) (bool, *models.NotificationEvent, error) {
	key := e.PspReference + ":" + e.EventCode
	if existing, ok := f.notifications[key]; ok {
		return false, existing, nil
	}
	f.nextID++
	e.ID = f.nextID
	f.notifications[key] = e
	return true, e, nil
}

func (f *fakeRepository) MarkNotificationProcessed(id uint, processingError string) error {
	f.processed[id] = processingError
	return nil
}

type fakeConfig struct {
	values map[string]string
	calls  int
	err    error
}

func (f *fakeConfig) GetValue(storeID uint, path string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.values[path], nil
}

type fakeValueCache struct {
	values map[string]string
	getErr error
}

func newFakeValueCache() *fakeValueCache {
	return &fakeValueCache{values: map[string]string{}}
}

func (c *fakeValueCache) Get(key string) (string, error) {
	if c.getErr != nil {
		return "", c.getErr
	}
	v, ok := c.values[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (c *fakeValueCache) Set(key string, value interface{}, _ time.Duration) error {
	s, ok := value.(string)
	if !ok {
		return errors.New("unsupported value")
	}
	c.values[key] = s
	return nil
}
