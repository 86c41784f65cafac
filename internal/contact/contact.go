package contact

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const ThankYou = "Thank you! We will get back to you soon."

var (
	ErrMissingFields = errors.New("name, mobile and message are required")
	ErrInvalidMobile = errors.New("mobile must be 10 digits")
)

var mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Message is a contact form submission.
type Message struct {
	ID        int       `json:"id"`
	TicketID  string    `json:"ticketId"`
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type Input struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Message string `json:"message"`
}

type Repository interface {
	Create(ctx context.Context, m Message) (Message, error)
}

type InMemoryRepository struct {
	mu       sync.Mutex
	messages []Message
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Create(_ context.Context, m Message) (Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = len(r.messages) + 1
	m.CreatedAt = time.Now().UTC()
	r.messages = append(r.messages, m)
	return m, nil
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit validates and stores a message, returning it with a fresh ticket id.
func (s *Service) Submit(ctx context.Context, in Input) (Message, error) {
	m := Message{
		TicketID: uuid.NewString(),
		Name:     strings.TrimSpace(in.Name),
		Mobile:   strings.TrimSpace(in.Mobile),
		Message:  strings.TrimSpace(in.Message),
	}
	if m.Name == "" || m.Mobile == "" || m.Message == "" {
		return Message{}, ErrMissingFields
	}
	if !mobilePattern.MatchString(m.Mobile) {
		return Message{}, ErrInvalidMobile
	}
	return s.repo.Create(ctx, m)
}
