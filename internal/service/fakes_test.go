package service

import (
	"sync"
	"time"

	"backend/internal/models"
	"backend/internal/repository"
)

// fakeUserRepo implements repository.UserRepository in memory.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) CreateUser(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	stored := *user
	f.users[user.Email] = &stored
	return nil
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) deleteUser(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, email)
}

func (f *fakeUserRepo) emailByID(id int64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for email, user := range f.users {
		if user.ID == id {
			return email
		}
	}
	return ""
}

// fakeMessageRepo implements repository.MessageRepository in memory.
// ClaimUnseen reads and flips under one lock, honoring the same
// atomicity contract as the SQL claim statement.
type fakeMessageRepo struct {
	mu     sync.Mutex
	nextID int64
	msgs   []models.Message
	users  *fakeUserRepo
}

func newFakeMessageRepo(users *fakeUserRepo) *fakeMessageRepo {
	return &fakeMessageRepo{users: users}
}

func (f *fakeMessageRepo) SaveMessage(msg *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	msg.ID = f.nextID
	msg.CreatedAt = time.Now()
	f.msgs = append(f.msgs, *msg)
	return nil
}

func (f *fakeMessageRepo) GetInbox(receiverID int64) ([]models.InboxMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inbox := []models.InboxMessage{}
	for _, m := range f.msgs {
		if m.ReceiverID == receiverID {
			inbox = append(inbox, models.InboxMessage{
				SenderEmail: f.users.emailByID(m.SenderID),
				Content:     m.Content,
			})
		}
	}
	return inbox, nil
}

func (f *fakeMessageRepo) ClaimUnseen(receiverID int64) ([]models.InboxMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inbox := []models.InboxMessage{}
	for i := range f.msgs {
		if f.msgs[i].ReceiverID == receiverID && !f.msgs[i].Seen {
			f.msgs[i].Seen = true
			inbox = append(inbox, models.InboxMessage{
				SenderEmail: f.users.emailByID(f.msgs[i].SenderID),
				Content:     f.msgs[i].Content,
			})
		}
	}
	return inbox, nil
}

func (f *fakeMessageRepo) messageCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.msgs)
}
