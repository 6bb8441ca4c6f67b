package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/crypto-academy/internal/models"
)

// ListFeatures возвращает карточки преимуществ лендинга.
func (s *Storage) ListFeatures(ctx context.Context) ([]models.Feature, error) {
	const op = "storage.ListFeatures"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, icon, title, description FROM features ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Feature
	for rows.Next() {
		var f models.Feature
		if err := rows.Scan(&f.ID, &f.Icon, &f.Title, &f.Description); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateFeature вставляет карточку преимущества и возвращает её ID.
func (s *Storage) CreateFeature(ctx context.Context, f models.Feature) (int, error) {
	const op = "storage.CreateFeature"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO features (icon, title, description) VALUES ($1, $2, $3) RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query, f.Icon, f.Title, f.Description).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// UpdateFeature обновляет карточку по ID и возвращает количество изменённых строк.
func (s *Storage) UpdateFeature(ctx context.Context, id int, f models.Feature) (int, error) {
	const op = "storage.UpdateFeature"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE features SET icon = $1, title = $2, description = $3 WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query, f.Icon, f.Title, f.Description, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteFeature удаляет карточку по ID.
func (s *Storage) DeleteFeature(ctx context.Context, id int) (int, error) {
	const op = "storage.DeleteFeature"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM features WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListTestimonials возвращает отзывы.
func (s *Storage) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	const op = "storage.ListTestimonials"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, role, content, rating FROM testimonials ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Testimonial
	for rows.Next() {
		var t models.Testimonial
		var role sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &role, &t.Content, &t.Rating); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		t.Role = role.String
		result = append(result, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateTestimonial вставляет отзыв и возвращает его ID.
func (s *Storage) CreateTestimonial(ctx context.Context, t models.Testimonial) (int, error) {
	const op = "storage.CreateTestimonial"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO testimonials (name, role, content, rating) VALUES ($1, $2, $3, $4) RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query, t.Name, t.Role, t.Content, t.Rating).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// UpdateTestimonial обновляет отзыв по ID.
func (s *Storage) UpdateTestimonial(ctx context.Context, id int, t models.Testimonial) (int, error) {
	const op = "storage.UpdateTestimonial"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE testimonials SET name = $1, role = $2, content = $3, rating = $4 WHERE id = $5`
	result, err := s.DB.ExecContext(ctx, query, t.Name, t.Role, t.Content, t.Rating, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteTestimonial удаляет отзыв по ID.
func (s *Storage) DeleteTestimonial(ctx context.Context, id int) (int, error) {
	const op = "storage.DeleteTestimonial"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListFAQs возвращает вопросы-ответы.
func (s *Storage) ListFAQs(ctx context.Context) ([]models.FAQ, error) {
	const op = "storage.ListFAQs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, question, answer FROM faqs ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.FAQ
	for rows.Next() {
		var f models.FAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateFAQ вставляет вопрос-ответ и возвращает его ID.
func (s *Storage) CreateFAQ(ctx context.Context, f models.FAQ) (int, error) {
	const op = "storage.CreateFAQ"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO faqs (question, answer) VALUES ($1, $2) RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query, f.Question, f.Answer).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// UpdateFAQ обновляет вопрос-ответ по ID.
func (s *Storage) UpdateFAQ(ctx context.Context, id int, f models.FAQ) (int, error) {
	const op = "storage.UpdateFAQ"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE faqs SET question = $1, answer = $2 WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, f.Question, f.Answer, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteFAQ удаляет вопрос-ответ по ID.
func (s *Storage) DeleteFAQ(ctx context.Context, id int) (int, error) {
	const op = "storage.DeleteFAQ"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// GetHeroContent возвращает единственную строку hero-блока.
func (s *Storage) GetHeroContent(ctx context.Context) (*models.HeroContent, error) {
	const op = "storage.GetHeroContent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, subtitle, description, whatsapp_number, discord_invite_link
			  FROM hero_content
			  WHERE id = 1`
	var h models.HeroContent
	row := s.DB.QueryRowContext(ctx, query)
	if err := row.Scan(&h.ID, &h.Title, &h.Subtitle, &h.Description,
		&h.WhatsappNumber, &h.DiscordInviteLink); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &h, nil
}

// UpdateHeroContent перезаписывает тексты hero-блока.
func (s *Storage) UpdateHeroContent(ctx context.Context, h models.HeroContent) error {
	const op = "storage.UpdateHeroContent"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE hero_content
			  SET title = $1, subtitle = $2, description = $3, whatsapp_number = $4, discord_invite_link = $5
			  WHERE id = 1`
	if _, err := s.DB.ExecContext(ctx, query,
		h.Title, h.Subtitle, h.Description, h.WhatsappNumber, h.DiscordInviteLink); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// EnsureDefaultHero вставляет стартовые тексты hero-блока, если их ещё нет.
func (s *Storage) EnsureDefaultHero(ctx context.Context, h models.HeroContent) error {
	const op = "storage.EnsureDefaultHero"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO hero_content (id, title, subtitle, description, whatsapp_number, discord_invite_link)
			  VALUES (1, $1, $2, $3, $4, $5)
			  ON CONFLICT (id) DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query,
		h.Title, h.Subtitle, h.Description, h.WhatsappNumber, h.DiscordInviteLink); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
