package mysql

import (
	"context"
	"database/sql"

	"hotel_match/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, upsertUserSQL,
		u.ID,
		u.Name,
		u.Username,
		u.Email,
		u.Phone,
		u.Website,
		u.Address.Street,
		u.Address.Suite,
		u.Address.City,
		u.Address.Zipcode,
		u.Address.Geo.Lat,
		u.Address.Geo.Lng,
		u.Company.Name,
		u.Company.CatchPhrase,
		u.Company.Bs,
	)
	return err
}

func (r *Repo) LogMiss(ctx context.Context, id int, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, id, status, reason)
	return err
}

// ListUsers makes the snapshot table usable as the roster's directory.
func (r *Repo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, listUsersSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var u domain.User
		var username, email, phone, website sql.NullString
		var street, suite, city, zipcode sql.NullString
		var cName, cPhrase, cBs sql.NullString
		if err := rows.Scan(
			&u.ID, &u.Name, &username, &email, &phone, &website,
			&street, &suite, &city, &zipcode,
			&u.Address.Geo.Lat, &u.Address.Geo.Lng,
			&cName, &cPhrase, &cBs,
		); err != nil {
			return nil, err
		}
		u.Username = username.String
		u.Email = email.String
		u.Phone = phone.String
		u.Website = website.String
		u.Address.Street = street.String
		u.Address.Suite = suite.String
		u.Address.City = city.String
		u.Address.Zipcode = zipcode.String
		u.Company.Name = cName.String
		u.Company.CatchPhrase = cPhrase.String
		u.Company.Bs = cBs.String
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
