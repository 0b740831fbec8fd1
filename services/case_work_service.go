package services

import (
	"errors"
	"time"

	"lexium/metrics"
	"lexium/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CaseWorkInput holds the editable fields of a work entry
type CaseWorkInput struct {
	UserID      uint
	CaseID      uint
	Date        time.Time
	StartTime   models.TimeOfDay
	EndTime     models.TimeOfDay
	Description string
	Billed      bool
}

// CaseWorkFilters holds filter options for listing work entries
type CaseWorkFilters struct {
	CaseID   uint
	UserID   uint
	DateFrom *time.Time
	DateTo   *time.Time
	Billed   *bool
	Keyword  string

	// Limit caps the number of entries; zero means all
	Limit int
}

// Validate checks the input before anything is written
func (in *CaseWorkInput) Validate() error {
	if in.UserID == 0 {
		return invalid("user_id", "is required")
	}
	if in.CaseID == 0 {
		return invalid("case_id", "is required")
	}
	if in.Date.IsZero() {
		return invalid("date", "is required")
	}
	if err := maxLength("description", in.Description, 255); err != nil {
		return err
	}
	if WorkDuration(in.Date, in.StartTime, in.EndTime) <= 0 {
		return invalid("end_time", models.ErrInvalidWorkInterval.Error())
	}
	return nil
}

func (in *CaseWorkInput) apply(w *models.CaseWork) {
	w.UserID = in.UserID
	w.CaseID = in.CaseID
	w.Date = models.DateOnly(in.Date)
	w.StartTime = in.StartTime
	w.EndTime = in.EndTime
	w.Description = SanitizeText(in.Description)
	w.Billed = in.Billed
}

// WorkDuration returns the length of a work entry in seconds. Start and end
// are placed on the same date; a result <= 0 is an invalid entry.
func WorkDuration(date time.Time, start, end models.TimeOfDay) int64 {
	return models.WorkDuration(date, start, end)
}

func checkWorkReferences(tx *gorm.DB, in *CaseWorkInput) error {
	var user models.User
	if err := tx.Select("id").First(&user, in.UserID).Error; err != nil {
		return findErr("user", in.UserID, err)
	}
	var c models.Case
	if err := tx.Select("id").First(&c, in.CaseID).Error; err != nil {
		return findErr("case", in.CaseID, err)
	}
	return nil
}

// workSaveErr keeps the interval check of the model hook a validation error
func workSaveErr(err error) error {
	if errors.Is(err, models.ErrInvalidWorkInterval) {
		return invalid("end_time", err.Error())
	}
	return storageErr("case work", err)
}

// CreateCaseWork records a work entry
func CreateCaseWork(db *gorm.DB, in CaseWorkInput) (*models.CaseWork, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var work models.CaseWork
	in.apply(&work)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := checkWorkReferences(tx, &in); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&work).Error; err != nil {
			return workSaveErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.CaseWorkEntries.Inc()
	return &work, nil
}

// UpdateCaseWork changes a work entry; the stored duration follows the new times
func UpdateCaseWork(db *gorm.DB, id uint, in CaseWorkInput) (*models.CaseWork, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var work models.CaseWork
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&work, id).Error; err != nil {
			return findErr("case work", id, err)
		}
		if err := checkWorkReferences(tx, &in); err != nil {
			return err
		}
		in.apply(&work)
		if err := tx.Omit(clause.Associations).Save(&work).Error; err != nil {
			return workSaveErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &work, nil
}

// GetCaseWork retrieves a work entry with its user and case
func GetCaseWork(db *gorm.DB, id uint) (*models.CaseWork, error) {
	var work models.CaseWork
	err := db.Preload("User").Preload("Case").Preload("Case.Client").First(&work, id).Error
	if err != nil {
		return nil, findErr("case work", id, err)
	}
	return &work, nil
}

// DeleteCaseWork removes a work entry
func DeleteCaseWork(db *gorm.DB, id uint) error {
	res := db.Delete(&models.CaseWork{}, id)
	if res.Error != nil {
		return storageErr("delete case work", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("case work", id)
	}
	return nil
}

// ListCaseWork returns work entries, newest first
func ListCaseWork(db *gorm.DB, filters CaseWorkFilters) ([]models.CaseWork, error) {
	var works []models.CaseWork
	query := db.Model(&models.CaseWork{})

	if filters.CaseID != 0 {
		query = query.Where("case_works.case_id = ?", filters.CaseID)
	}
	if filters.UserID != 0 {
		query = query.Where("case_works.user_id = ?", filters.UserID)
	}
	if filters.DateFrom != nil {
		query = query.Where("case_works.date >= ?", models.DateOnly(*filters.DateFrom))
	}
	if filters.DateTo != nil {
		query = query.Where("case_works.date <= ?", models.DateOnly(*filters.DateTo))
	}
	if filters.Billed != nil {
		query = query.Where("case_works.billed = ?", *filters.Billed)
	}
	if filters.Keyword != "" {
		kw := "%" + filters.Keyword + "%"
		query = query.
			Joins("JOIN cases ON cases.id = case_works.case_id").
			Joins("JOIN users ON users.id = case_works.user_id").
			Where(db.Where("case_works.description LIKE ?", kw).
				Or("cases.number LIKE ?", kw).
				Or("cases.name LIKE ?", kw).
				Or("users.username LIKE ?", kw).
				Or("users.last_name LIKE ?", kw))
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	err := query.
		Preload("User").
		Preload("Case").
		Preload("Case.Client").
		Order("case_works.date DESC").
		Order("case_works.start_time DESC").
		Order("case_works.id DESC").
		Find(&works).Error
	if err != nil {
		return nil, storageErr("list case work", err)
	}
	return works, nil
}

// ListCaseWorkByDate returns the entries between from and to (inclusive)
// grouped by their date in YYYY-MM-DD form, each day ordered by start time
func ListCaseWorkByDate(db *gorm.DB, from, to time.Time) (map[string][]models.CaseWork, error) {
	var works []models.CaseWork
	err := db.Where("date >= ? AND date <= ?", models.DateOnly(from), models.DateOnly(to)).
		Preload("User").
		Preload("Case").
		Order("date ASC").
		Order("start_time ASC").
		Find(&works).Error
	if err != nil {
		return nil, storageErr("list case work", err)
	}

	byDate := make(map[string][]models.CaseWork)
	for _, w := range works {
		key := w.Date.Format(DateLayout)
		byDate[key] = append(byDate[key], w)
	}
	return byDate, nil
}

// SetCaseWorkBilled marks every unbilled entry of a case as billed (or the
// reverse) and returns the number of changed rows. Durations are untouched.
func SetCaseWorkBilled(db *gorm.DB, caseID uint, billed bool) (int64, error) {
	if _, err := GetCase(db, caseID); err != nil {
		return 0, err
	}
	res := db.Session(&gorm.Session{SkipHooks: true}).
		Model(&models.CaseWork{}).
		Where("case_id = ? AND billed = ?", caseID, !billed).
		Update("billed", billed)
	if res.Error != nil {
		return 0, storageErr("mark case work billed", res.Error)
	}
	return res.RowsAffected, nil
}
