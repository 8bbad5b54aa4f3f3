package mysql

const upsertUserSQL = `
INSERT INTO directory_users
  (id, name, username, email, phone, website,
   street, suite, city, zipcode, lat, lng,
   company_name, company_catch_phrase, company_bs)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name                 = VALUES(name),
  username             = VALUES(username),
  email                = VALUES(email),
  phone                = VALUES(phone),
  website              = VALUES(website),
  street               = VALUES(street),
  suite                = VALUES(suite),
  city                 = VALUES(city),
  zipcode              = VALUES(zipcode),
  lat                  = VALUES(lat),
  lng                  = VALUES(lng),
  company_name         = VALUES(company_name),
  company_catch_phrase = VALUES(company_catch_phrase),
  company_bs           = VALUES(company_bs),
  updated_at           = CURRENT_TIMESTAMP
`

const insertMissSQL = `
INSERT INTO ingest_misses (id, http_status, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE http_status = VALUES(http_status), reason = VALUES(reason), seen_at = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Ordered by id so the roster sees the same sequence as the remote directory;
// the matcher breaks ties by position.
const listUsersSQL = `
SELECT
  id, name, username, email, phone, website,
  street, suite, city, zipcode, lat, lng,
  company_name, company_catch_phrase, company_bs
FROM directory_users
ORDER BY id
`
