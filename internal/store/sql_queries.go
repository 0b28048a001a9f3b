package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/dataset-hub/models"
)

var (
	usersTable    = models.User{}.TableName()
	datasetsTable = models.Dataset{}.TableName()
	sessionsTable = models.Session{}.TableName()

	userColumns    = []string{"id", "username", "email", "first_name", "last_name", "password", "date_joined"}
	datasetColumns = []string{"d.id", "d.title", "d.description", "d.file", "d.created_at", "d.updated_at", "d.owner_id", "u.username"}
	sessionColumns = []string{"id", "user_id", "created_at", "expires_at"}
)

// ─── users ───────────────────────────────────────────────────────────────────

func (db *DB) createUserQuery(user models.User) (string, []any, error) {
	return db.builder.
		Insert(usersTable).
		Columns("username", "email", "first_name", "last_name", "password", "date_joined").
		Values(user.Username, user.Email, user.FirstName, user.LastName, user.PasswordHash, user.DateJoined).
		Suffix("RETURNING id").
		ToSql()
}

func (db *DB) selectUsers() sq.SelectBuilder {
	return db.builder.Select(userColumns...).From(usersTable)
}

func (db *DB) findUserByUsernameQuery(username string) (string, []any, error) {
	return db.selectUsers().Where(sq.Eq{"username": username}).ToSql()
}

func (db *DB) findUserByIDQuery(userID int64) (string, []any, error) {
	return db.selectUsers().Where(sq.Eq{"id": userID}).ToSql()
}

func (db *DB) firstUserQuery() (string, []any, error) {
	return db.selectUsers().OrderBy("id ASC").Limit(1).ToSql()
}

func (db *DB) updateProfileQuery(userID int64, update models.ProfileUpdate) (string, []any, error) {
	if update.IsEmpty() {
		return "", nil, fmt.Errorf("%w: empty profile update", ErrBuildingSQLQuery)
	}

	query := db.builder.Update(usersTable).Where(sq.Eq{"id": userID})
	if update.Email != nil {
		query = query.Set("email", *update.Email)
	}
	if update.FirstName != nil {
		query = query.Set("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		query = query.Set("last_name", *update.LastName)
	}

	return query.ToSql()
}

func (db *DB) updatePasswordQuery(userID int64, passwordHash string) (string, []any, error) {
	return db.builder.
		Update(usersTable).
		Set("password", passwordHash).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

// ─── datasets ────────────────────────────────────────────────────────────────

func (db *DB) createDatasetQuery(dataset models.Dataset) (string, []any, error) {
	var file any
	if dataset.HasFile() {
		file = dataset.File
	}

	return db.builder.
		Insert(datasetsTable).
		Columns("title", "description", "file", "created_at", "updated_at", "owner_id").
		Values(dataset.Title, dataset.Description, file, dataset.CreatedAt, dataset.UpdatedAt, dataset.OwnerID).
		Suffix("RETURNING id").
		ToSql()
}

func (db *DB) selectDatasets() sq.SelectBuilder {
	return db.builder.
		Select(datasetColumns...).
		From(datasetsTable + " d").
		Join(usersTable + " u ON u.id = d.owner_id")
}

func (db *DB) listDatasetsQuery() (string, []any, error) {
	return db.selectDatasets().OrderBy("d.created_at DESC", "d.id DESC").ToSql()
}

func (db *DB) findDatasetByIDQuery(datasetID int64) (string, []any, error) {
	return db.selectDatasets().Where(sq.Eq{"d.id": datasetID}).ToSql()
}

// ─── sessions ────────────────────────────────────────────────────────────────

func (db *DB) createSessionQuery(session models.Session) (string, []any, error) {
	return db.builder.
		Insert(sessionsTable).
		Columns(sessionColumns...).
		Values(session.ID, session.UserID, session.CreatedAt, session.ExpiresAt).
		ToSql()
}

func (db *DB) findSessionQuery(sessionID string) (string, []any, error) {
	return db.builder.
		Select(sessionColumns...).
		From(sessionsTable).
		Where(sq.Eq{"id": sessionID}).
		ToSql()
}

func (db *DB) deleteSessionQuery(sessionID string) (string, []any, error) {
	return db.builder.Delete(sessionsTable).Where(sq.Eq{"id": sessionID}).ToSql()
}

func (db *DB) deleteUserSessionsQuery(userID int64, keepSessionID string) (string, []any, error) {
	query := db.builder.Delete(sessionsTable).Where(sq.Eq{"user_id": userID})
	if keepSessionID != "" {
		query = query.Where(sq.NotEq{"id": keepSessionID})
	}

	return query.ToSql()
}
