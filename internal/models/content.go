package models

// Feature карточка преимущества на лендинге.
type Feature struct {
	ID          int    `json:"id"`
	Icon        string `json:"icon" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// Testimonial отзыв ученика.
type Testimonial struct {
	ID      int    `json:"id"`
	Name    string `json:"name" validate:"required"`
	Role    string `json:"role"`
	Content string `json:"content" validate:"required"`
	Rating  int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

// FAQ вопрос-ответ на лендинге.
type FAQ struct {
	ID       int    `json:"id"`
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// HeroContent единственная строка с текстами hero-блока (id = 1).
type HeroContent struct {
	ID                int    `json:"id"`
	Title             string `json:"title"`
	Subtitle          string `json:"subtitle"`
	Description       string `json:"description"`
	WhatsappNumber    string `json:"whatsappNumber"`
	DiscordInviteLink string `json:"discord_invite_link"`
}

// ContentBundle агрегат всего публичного контента лендинга,
// отдаётся одним ответом и кэшируется в redis.
type ContentBundle struct {
	HeroContent  *HeroContent  `json:"heroContent"`
	Features     []Feature     `json:"features"`
	Packages     []Package     `json:"packages"`
	Testimonials []Testimonial `json:"testimonials"`
	FAQs         []FAQ         `json:"faqs"`
}
