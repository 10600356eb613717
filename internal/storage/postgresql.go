// Package storage реализует хранилище данных на основе PostgreSQL
// для управления маршрутами поездок и пользователями. Хранилище —
// единственный писатель состояния маршрутов; валидацию и авторизацию
// выполняют вышестоящие слои.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/itinerary-planner/internal/models"
)

// ErrItineraryNotFound возвращается при чтении маршрута, которого нет.
// Вызывающие обязаны отличать "маршрута ещё нет" от ошибки хранилища.
var ErrItineraryNotFound = errors.New("itinerary not found")

// ErrUserNotFound возвращается при поиске несуществующего пользователя.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken возвращается при регистрации на уже занятую почту.
var ErrEmailTaken = errors.New("email already registered")

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с маршрутами и пользователями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// ===== ITINERARY METHODS =====

// GetItinerary возвращает маршрут по UID владельца.
// Если записи нет, возвращает ErrItineraryNotFound.
func (s *Storage) GetItinerary(ctx context.Context, userUID string) (*models.Itinerary, error) {
	const op = "storage.GetItinerary"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT start_date, days
			  FROM itineraries
			  WHERE user_uid = $1`
	var startDate string
	var daysRaw []byte
	err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&startDate, &daysRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrItineraryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	days := map[string]models.DayDetails{}
	if err := json.Unmarshal(daysRaw, &days); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.Itinerary{StartDate: startDate, Days: days}, nil
}

// SaveItinerary выполняет атомарный upsert маршрута по UID владельца.
// Запись либо вставляется, либо полностью перезаписывается (start_date
// и days целиком, без слияния по дням) с обновлением updated_at.
// Уникальность user_uid гарантирует база, поэтому конкурентные
// сохранения сходятся к последней записи и не порождают дубликатов.
func (s *Storage) SaveItinerary(ctx context.Context, userUID string, itinerary models.Itinerary) (*models.Itinerary, error) {
	const op = "storage.SaveItinerary"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	daysRaw, err := json.Marshal(itinerary.Days)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO itineraries (user_uid, start_date, days)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (user_uid) DO UPDATE
			  SET start_date = EXCLUDED.start_date,
			      days = EXCLUDED.days,
			      updated_at = now()`
	if _, err := s.DB.ExecContext(ctx, query, userUID, itinerary.StartDate, daysRaw); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &itinerary, nil
}

// DeleteItinerary удаляет маршрут по UID владельца и возвращает
// количество удалённых строк. Повторное удаление не является ошибкой.
func (s *Storage) DeleteItinerary(ctx context.Context, userUID string) (int, error) {
	const op = "storage.DeleteItinerary"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM itineraries WHERE user_uid = $1`
	result, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ===== USER METHODS =====

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его UID.
// На занятую почту возвращает ErrEmailTaken.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (uid, email, name, password_hash)
			  VALUES ($1, $2, $3, $4)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.UID, user.Email, user.Name, user.PasswordHash).Scan(&newUID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByEmail возвращает пользователя по его email.
// Если пользователя нет, возвращает ErrUserNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	return s.getUser(ctx, op, `SELECT uid, email, name, password_hash, created_at
			  FROM users
			  WHERE email = $1`, email)
}

// GetUserByUID возвращает пользователя по его UID.
// Если пользователя нет (например, учётная запись удалена, а сессия
// ещё жива), возвращает ErrUserNotFound.
func (s *Storage) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	const op = "storage.GetUserByUID"
	return s.getUser(ctx, op, `SELECT uid, email, name, password_hash, created_at
			  FROM users
			  WHERE uid = $1`, uid)
}

func (s *Storage) getUser(ctx context.Context, op, query string, arg any) (*models.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, arg)
	err := row.Scan(&u.UID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
