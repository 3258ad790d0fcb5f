package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/Sudheer2002-ui/employeedirbackend/models"
)

const employeeTable = "employees"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// GormEmployeeRepository is the relational variant of the employee store.
// Identifier assignment is delegated to SQLite's AUTOINCREMENT; after every
// deletion the engine's next-value watermark is realigned to the remaining
// maximum id, so deleted high-water-mark ids get recycled.
type GormEmployeeRepository struct {
	db *gorm.DB
}

func NewGormEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

func (r *GormEmployeeRepository) Create(ctx context.Context, emp *models.Employee) error {
	if err := r.db.WithContext(ctx).Create(emp).Error; err != nil {
		return mapGormErr(err)
	}
	return nil
}

func (r *GormEmployeeRepository) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	var emp models.Employee
	err := r.db.WithContext(ctx).First(&emp, id).Error
	if err != nil {
		return nil, mapGormErr(err)
	}
	return &emp, nil
}

func (r *GormEmployeeRepository) ListAll(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := r.db.WithContext(ctx).Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *GormEmployeeRepository) Update(ctx context.Context, id int64, upd models.EmployeeUpdate) error {
	// Select forces every updatable column, including NULLs and empty
	// strings, so the row is replaced wholesale. ID and CreatedAt stay
	// untouched.
	res := r.db.WithContext(ctx).Model(&models.Employee{}).
		Where("id = ?", id).
		Select("name", "email", "mobile", "designation", "gender", "courses", "image_path").
		Updates(models.Employee{
			Name:        upd.Name,
			Email:       upd.Email,
			Mobile:      upd.Mobile,
			Designation: upd.Designation,
			Gender:      upd.Gender,
			Courses:     upd.Courses,
			ImagePath:   upd.ImagePath,
		})
	if res.Error != nil {
		return mapGormErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormEmployeeRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Employee{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	// The realignment must complete before the deletion is acknowledged.
	// It is intentionally not part of a transaction with the delete: a
	// crash in between leaves the watermark stale until the next deletion
	// realigns it again.
	if err := r.realignSequence(ctx); err != nil {
		return fmt.Errorf("employee %d deleted but sequence realignment failed: %w", id, err)
	}
	return nil
}

// realignSequence resets SQLite's next-id watermark for the employees table
// to the current maximum id (0 when no rows remain), so the next insert
// reuses ids freed at the top of the range rather than continuing past them.
func (r *GormEmployeeRepository) realignSequence(ctx context.Context) error {
	queryBuilder := psql.Update("sqlite_sequence").
		Set("seq", sq.Expr(fmt.Sprintf("(SELECT IFNULL(MAX(id), 0) FROM %s)", employeeTable))).
		Where(sq.Eq{"name": employeeTable})
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL for sequence realignment: %w", err)
	}
	return r.db.WithContext(ctx).Exec(sqlStr, args...).Error
}

func mapGormErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	return err
}
