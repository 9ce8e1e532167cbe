package repository

import (
	"context"
	"fmt"

	"github.com/opencert/certhub/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// courseRepository implements CourseRepository backed by pgxpool
type courseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(pool *pgxpool.Pool) CourseRepository {
	return &courseRepository{pool: pool}
}

const courseColumns = `id, organization_id, name, location, instructor, created_at, updated_at`

func scanCourse(row pgx.Row) (domain.Course, error) {
	var course domain.Course
	err := row.Scan(
		&course.ID,
		&course.OrganizationID,
		&course.Name,
		&course.Location,
		&course.Instructor,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	return course, err
}

// Create creates a new course
func (r *courseRepository) Create(ctx context.Context, course domain.Course) (domain.Course, error) {
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO courses (id, organization_id, name, location, instructor, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+courseColumns,
		course.ID, course.OrganizationID, course.Name, course.Location, course.Instructor, course.CreatedAt, course.UpdatedAt,
	)

	created, err := scanCourse(row)
	if err != nil {
		return domain.Course{}, fmt.Errorf("failed to create course: %w", err)
	}
	return created, nil
}

// GetByID retrieves a course by ID
func (r *courseRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Course, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1`,
		id,
	)

	course, err := scanCourse(row)
	if err != nil {
		return domain.Course{}, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

// List retrieves all courses for an organization
func (r *courseRepository) List(ctx context.Context, organizationID uuid.UUID) ([]domain.Course, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT `+courseColumns+` FROM courses WHERE organization_id = $1 ORDER BY created_at DESC`,
		organizationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := []domain.Course{}
	for rows.Next() {
		course, scanErr := scanCourse(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan course: %w", scanErr)
		}
		courses = append(courses, course)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", rowsErr)
	}

	return courses, nil
}

// Update updates a course
func (r *courseRepository) Update(ctx context.Context, course domain.Course) (domain.Course, error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE courses
		 SET name = $2, location = $3, instructor = $4, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+courseColumns,
		course.ID, course.Name, course.Location, course.Instructor,
	)

	updated, err := scanCourse(row)
	if err != nil {
		return domain.Course{}, fmt.Errorf("failed to update course: %w", err)
	}
	return updated, nil
}

// Delete deletes a course
func (r *courseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return nil
}
