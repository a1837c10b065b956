package mysql

// `hotels` mirrors the CSV columns; seq keeps the source file order, which
// the viewer relies on to break rating ties.
const listHotelsSQL = `
SELECT
  city_name,
  hotel_name,
  hotel_rating,
  hotel_latitude,
  hotel_longitude,
  hotel_url,
  hotel_description
FROM hotels
ORDER BY seq, id
`

const upsertHotelsPrefix = "INSERT INTO hotels\n" +
	"  (id, seq, city_name, hotel_name, hotel_rating, hotel_latitude, hotel_longitude, hotel_url, hotel_description)\nVALUES "

// Use VALUES(col) for broad compatibility.
const upsertHotelsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  seq               = VALUES(seq),\n" +
	"  hotel_rating      = VALUES(hotel_rating),\n" +
	"  hotel_latitude    = VALUES(hotel_latitude),\n" +
	"  hotel_longitude   = VALUES(hotel_longitude),\n" +
	"  hotel_description = VALUES(hotel_description),\n" +
	"  updated_at        = CURRENT_TIMESTAMP\n"

const countHotelsSQL = `SELECT COUNT(*) FROM hotels`
