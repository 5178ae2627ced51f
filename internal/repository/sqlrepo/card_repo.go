package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bizcardx/internal/domain"
	"bizcardx/internal/extraction"
	"bizcardx/internal/port"
)

// cardColumns lists every column except the image blob, in record order.
const cardColumns = `id, company_name, name, designation, phone_number, email, website,
	address, state, pincode, image_content_type, image_key, created_at, updated_at`

// recordColumns are the table columns for extraction.ColumnNames, in the
// same order as extraction.Record.Columns.
var recordColumns = snakeColumns(extraction.ColumnNames)

func snakeColumns(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		var b strings.Builder
		for j, r := range name {
			if unicode.IsUpper(r) {
				if j > 0 {
					b.WriteByte('_')
				}
				r = unicode.ToLower(r)
			}
			b.WriteRune(r)
		}
		out[i] = b.String()
	}
	return out
}

type cardRepo struct {
	db *sqlx.DB
}

// NewCardRepo creates a new sqlx-backed CardRepository.
func NewCardRepo(db *sqlx.DB) port.CardRepository {
	return &cardRepo{db: db}
}

func (r *cardRepo) Create(ctx context.Context, card *domain.BusinessCard) error {
	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}
	now := time.Now().UTC()
	card.CreatedAt = now
	card.UpdatedAt = now

	cols := append(append([]string{"id"}, recordColumns...),
		"image_content_type", "image_key", "created_at", "updated_at")
	args := append(append([]any{card.ID}, card.Record().Columns()...),
		card.ImageContentType, card.ImageKey, card.CreatedAt, card.UpdatedAt)

	query := r.db.Rebind(fmt.Sprintf("INSERT INTO business_cards (%s) VALUES (%s)",
		strings.Join(cols, ", "), strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")))

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("cardRepo.Create: %w", err)
	}
	return nil
}

func (r *cardRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.BusinessCard, error) {
	var card domain.BusinessCard
	err := r.db.GetContext(ctx, &card, r.db.Rebind("SELECT * FROM business_cards WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("cardRepo.GetByID: %w", err)
	}
	return &card, nil
}

func (r *cardRepo) GetByName(ctx context.Context, name string) (*domain.BusinessCard, error) {
	var card domain.BusinessCard
	query := r.db.Rebind("SELECT * FROM business_cards WHERE name = ? ORDER BY created_at DESC LIMIT 1")
	if err := r.db.GetContext(ctx, &card, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("cardRepo.GetByName: %w", err)
	}
	return &card, nil
}

func (r *cardRepo) List(ctx context.Context, filter domain.CardFilter) ([]domain.BusinessCard, int, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Name != "" {
		conds = append(conds, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Company != "" {
		conds = append(conds, "LOWER(company_name) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.Company)+"%")
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind("SELECT COUNT(*) FROM business_cards"+where), args...); err != nil {
		return nil, 0, fmt.Errorf("cardRepo.List count: %w", err)
	}

	query := "SELECT " + cardColumns + " FROM business_cards" + where + " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	cards := []domain.BusinessCard{}
	if err := r.db.SelectContext(ctx, &cards, r.db.Rebind(query), args...); err != nil {
		return nil, 0, fmt.Errorf("cardRepo.List: %w", err)
	}
	return cards, total, nil
}

func (r *cardRepo) ListNames(ctx context.Context) ([]string, error) {
	names := []string{}
	err := r.db.SelectContext(ctx, &names,
		"SELECT DISTINCT name FROM business_cards WHERE name <> '' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("cardRepo.ListNames: %w", err)
	}
	return names, nil
}

func (r *cardRepo) Update(ctx context.Context, card *domain.BusinessCard) error {
	card.UpdatedAt = time.Now().UTC()
	query := r.db.Rebind(`UPDATE business_cards SET company_name = ?, name = ?, designation = ?,
		phone_number = ?, email = ?, website = ?, address = ?, state = ?, pincode = ?, updated_at = ?
		WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query,
		card.CompanyName, card.Name, card.Designation, card.PhoneNumber, card.Email,
		card.Website, card.Address, card.State, card.Pincode, card.UpdatedAt, card.ID)
	if err != nil {
		return fmt.Errorf("cardRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}

func (r *cardRepo) SetImageKey(ctx context.Context, id uuid.UUID, key string) error {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind("UPDATE business_cards SET image_key = ?, updated_at = ? WHERE id = ?"),
		key, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("cardRepo.SetImageKey: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}

func (r *cardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM business_cards WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("cardRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}

func (r *cardRepo) GetImage(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	var row struct {
		Image       []byte `db:"image"`
		ContentType string `db:"image_content_type"`
	}
	err := r.db.GetContext(ctx, &row,
		r.db.Rebind("SELECT image, image_content_type FROM business_cards WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", domain.ErrCardNotFound
		}
		return nil, "", fmt.Errorf("cardRepo.GetImage: %w", err)
	}
	return row.Image, row.ContentType, nil
}

func (r *cardRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
