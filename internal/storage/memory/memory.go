package memory

import (
	"github.com/fdg312/mealweek/internal/storage"
)

// MemoryStorage implements storage.Storage in memory for local runs.
type MemoryStorage struct {
	profiles  *ProfilesMemoryStorage
	foodPrefs *FoodPrefsMemoryStorage
	reports   *ReportsMemoryStorage
	emailOTPs *EmailOTPMemoryStorage
}

func New() *MemoryStorage {
	return &MemoryStorage{
		profiles:  NewProfilesMemoryStorage(),
		foodPrefs: NewFoodPrefsMemoryStorage(),
		reports:   NewReportsMemoryStorage(),
		emailOTPs: NewEmailOTPMemoryStorage(),
	}
}

func (m *MemoryStorage) Profiles() storage.ProfilesStorage   { return m.profiles }
func (m *MemoryStorage) FoodPrefs() storage.FoodPrefsStorage { return m.foodPrefs }
func (m *MemoryStorage) Reports() storage.ReportsStorage     { return m.reports }
func (m *MemoryStorage) EmailOTPs() storage.EmailOTPStorage  { return m.emailOTPs }

func (m *MemoryStorage) Close() error {
	return nil
}
