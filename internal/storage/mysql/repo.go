package mysql

import (
	"context"
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hotel_map/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// Row is a hotel together with its position in the source file.
type Row struct {
	Seq   int
	Hotel domain.HotelRecord
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// Open connects with the registered "mysql" driver and pings the server.
func Open(ctx context.Context, dsn string) (*Repo, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	pctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	return New(db), nil
}

func (r *Repo) Close() error { return r.db.Close() }

// HotelID derives a key from the source position and identifying columns of a row.
// Reloading the same file yields the same ids; distinct rows never share one.
func HotelID(r Row) string {
	h := r.Hotel
	sig := strings.Join([]string{
		strconv.Itoa(r.Seq), h.City, deref(h.Name), deref(h.URL),
		strconv.FormatFloat(h.Lat, 'g', -1, 64), strconv.FormatFloat(h.Lon, 'g', -1, 64),
	}, "|")
	sum := sha1.Sum([]byte(sig))
	return hex.EncodeToString(sum[:])
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (r *Repo) ListHotels(ctx context.Context) ([]domain.RawHotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RawHotel
	for rows.Next() {
		var (
			city, name, url, desc sql.NullString
			rating, lat, lon      sql.NullFloat64
		)
		if err := rows.Scan(&city, &name, &rating, &lat, &lon, &url, &desc); err != nil {
			return nil, err
		}
		out = append(out, domain.RawHotel{
			City:        nullStr(city),
			Name:        nullStr(name),
			Rating:      nullF64(rating),
			Lat:         nullF64(lat),
			Lon:         nullF64(lon),
			URL:         nullStr(url),
			Description: nullStr(desc),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertHotels writes one multi-row statement for the batch.
func (r *Repo) UpsertHotels(ctx context.Context, batch []Row) error {
	if len(batch) == 0 {
		return nil
	}
	values := make([]string, 0, len(batch))
	args := make([]any, 0, len(batch)*9) // 9 params per row
	for _, row := range batch {
		h := row.Hotel
		values = append(values, "(?,?,?,?,?,?,?,?,?)")
		args = append(args,
			HotelID(row),
			row.Seq,
			h.City,
			valStr(h.Name),
			h.Rating,
			h.Lat,
			h.Lon,
			valStr(h.URL),
			valStr(h.Description),
		)
	}
	sqlStr := upsertHotelsPrefix + strings.Join(values, ",") + upsertHotelsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *Repo) CountHotels(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, countHotelsSQL).Scan(&n)
	return n, err
}

func nullStr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullF64(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
