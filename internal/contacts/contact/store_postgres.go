package contact

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/igorivnaolga/contactbook/internal/platform/apperr"
	"github.com/igorivnaolga/contactbook/internal/platform/database/schema"
	"github.com/igorivnaolga/contactbook/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var contactColumns = strings.Join(schema.Contact.Columns(), ", ")

func scanContact(row pgx.Row) (*Contact, error) {
	entry := &Contact{}
	err := row.Scan(
		&entry.ID,
		&entry.OwnerID,
		&entry.FirstName,
		&entry.LastName,
		&entry.Email,
		&entry.Phone,
		&entry.Birthday,
		&entry.Info,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (repository *PostgresRepository) List(context context.Context, ownerID string, filter Filter, limit, offset int) ([]*Contact, int, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		contactColumns, schema.Contact.Table, schema.Contact.OwnerID)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.Contact.Table, schema.Contact.OwnerID)

	args := []any{ownerID}
	countArgs := []any{ownerID}

	addFilter := func(column, value string) {
		if value == "" {
			return
		}
		query += " AND " + column + " ILIKE $" + itos(len(args)+1)
		countQuery += " AND " + column + " ILIKE $" + itos(len(countArgs)+1)
		args = append(args, "%"+value+"%")
		countArgs = append(countArgs, "%"+value+"%")
	}

	addFilter(schema.Contact.FirstName, filter.FirstName)
	addFilter(schema.Contact.LastName, filter.LastName)
	addFilter(schema.Contact.Email, filter.Email)

	query += fmt.Sprintf(" ORDER BY %s ASC, %s ASC", schema.Contact.LastName, schema.Contact.FirstName)
	query += " LIMIT $" + itos(len(args)+1) + " OFFSET $" + itos(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Contact")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Contact")
	}
	defer rows.Close()

	var entries []*Contact
	for rows.Next() {
		entry, err := scanContact(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Contact")
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}

func (repository *PostgresRepository) Get(context context.Context, ownerID, id string) (*Contact, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		contactColumns, schema.Contact.Table, schema.Contact.OwnerID, schema.Contact.ID)

	entry, err := scanContact(repository.db.QueryRow(context, query, ownerID, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Contact")
	}
	return entry, nil
}

func (repository *PostgresRepository) Create(context context.Context, entry *Contact) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		schema.Contact.Table, contactColumns)

	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		entry.ID,
		entry.OwnerID,
		entry.FirstName,
		entry.LastName,
		entry.Email,
		entry.Phone,
		entry.Birthday,
		entry.Info,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	// The (ownerid, email) unique index fires here for per-owner duplicates
	if dberr.IsUniqueViolation(err) {
		return apperr.Conflict("Contact with this email already exists")
	}
	if err != nil {
		return dberr.Wrap(err, "Contact")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, entry *Contact) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9
		WHERE %s = $1 AND %s = $2`,
		schema.Contact.Table,
		schema.Contact.FirstName, schema.Contact.LastName, schema.Contact.Email,
		schema.Contact.Phone, schema.Contact.Birthday, schema.Contact.Info,
		schema.Contact.UpdatedAt,
		schema.Contact.OwnerID, schema.Contact.ID,
	)

	entry.UpdatedAt = time.Now()

	cmd, err := repository.db.Exec(context, query,
		entry.OwnerID,
		entry.ID,
		entry.FirstName,
		entry.LastName,
		entry.Email,
		entry.Phone,
		entry.Birthday,
		entry.Info,
		entry.UpdatedAt,
	)

	if dberr.IsUniqueViolation(err) {
		return apperr.Conflict("Contact with this email already exists")
	}
	if err != nil {
		return dberr.Wrap(err, "Contact")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, ownerID, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Contact.Table, schema.Contact.OwnerID, schema.Contact.ID)

	cmd, err := repository.db.Exec(context, query, ownerID, id)
	if err != nil {
		return dberr.Wrap(err, "Contact")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// UpcomingBirthdays matches on month-day so the year of birth is irrelevant.
// The CASE handles the late-December window that wraps into January.
func (repository *PostgresRepository) UpcomingBirthdays(context context.Context, ownerID string) ([]*Contact, error) {
	query := fmt.Sprintf(`
		SELECT %[1]s
		FROM %[2]s
		WHERE %[3]s = $1
		  AND %[4]s IS NOT NULL
		  AND CASE
			WHEN to_char(CURRENT_DATE, 'MMDD') <= to_char(CURRENT_DATE + %[5]d, 'MMDD')
			THEN to_char(%[4]s, 'MMDD') BETWEEN to_char(CURRENT_DATE, 'MMDD') AND to_char(CURRENT_DATE + %[5]d, 'MMDD')
			ELSE to_char(%[4]s, 'MMDD') >= to_char(CURRENT_DATE, 'MMDD')
			  OR to_char(%[4]s, 'MMDD') <= to_char(CURRENT_DATE + %[5]d, 'MMDD')
		  END
		ORDER BY to_char(%[4]s, 'MMDD') ASC`,
		contactColumns, schema.Contact.Table, schema.Contact.OwnerID,
		schema.Contact.Birthday, BirthdayWindowDays)

	rows, err := repository.db.Query(context, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, "Contact")
	}
	defer rows.Close()

	var entries []*Contact
	for rows.Next() {
		entry, err := scanContact(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Contact")
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func itos(i int) string {
	return strconv.Itoa(i)
}
