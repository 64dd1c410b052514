package services

import (
	"sort"
	"strings"
	"sync"
	"time"

	"adminkit_backend/internal/models"
	"adminkit_backend/internal/repositories"
)

// In-memory реализации репозиториев для юнит-тестов сервисов.
// Семантика повторяет SQL-слой: sentinel-ошибки, уникальные индексы.

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) FindByID(id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByToken(token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.UserToken == token {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.UserToken == user.UserToken {
			return repositories.ErrUserAlreadyExists
		}
	}
	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ExistsByUsername(username string) (bool, error) {
	_, err := r.FindByUsername(username)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *fakeUserRepo) ExistsByToken(token string) (bool, error) {
	_, err := r.FindByToken(token)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *fakeUserRepo) UpdateToken(id uint, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.UserToken = token
	return nil
}

func (r *fakeUserRepo) UpdateLoginInfo(id uint, ip, userAgent string, loginTime time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.IPAddress = ip
	user.UserAgent = userAgent
	user.LastLoginTime = loginTime
	return nil
}

func (r *fakeUserRepo) FindAll(limit, offset int) ([]models.User, error) {
	all, _ := r.All()
	if offset >= len(all) {
		return []models.User{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeUserRepo) All() ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		all = append(all, *user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (r *fakeUserRepo) CountAll() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type fakeBanRepo struct {
	mu     sync.Mutex
	bans   []*models.Banned
	users  *fakeUserRepo
	nextID uint
}

func newFakeBanRepo(users *fakeUserRepo) *fakeBanRepo {
	return &fakeBanRepo{users: users, nextID: 1}
}

func (r *fakeBanRepo) Create(ban *models.Banned) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ban.ID = r.nextID
	r.nextID++
	clone := *ban
	r.bans = append(r.bans, &clone)
	return nil
}

func (r *fakeBanRepo) FindActiveByUserID(userID uint) (*models.Banned, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ban := range r.bans {
		if ban.UserID == userID && ban.Status == models.BanStatusActive {
			clone := *ban
			return &clone, nil
		}
	}
	return nil, repositories.ErrBanNotFound
}

func (r *fakeBanRepo) HasActiveBan(userID uint) (bool, error) {
	_, err := r.FindActiveByUserID(userID)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *fakeBanRepo) Deactivate(userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ban := range r.bans {
		if ban.UserID == userID && ban.Status == models.BanStatusActive {
			ban.Status = models.BanStatusInactive
		}
	}
	return nil
}

func (r *fakeBanRepo) FindBannedUsers(limit, offset int) ([]models.User, error) {
	r.mu.Lock()
	seen := make(map[uint]bool)
	ids := make([]uint, 0)
	for _, ban := range r.bans {
		if ban.Status == models.BanStatusActive && !seen[ban.UserID] {
			seen[ban.UserID] = true
			ids = append(ids, ban.UserID)
		}
	}
	r.mu.Unlock()

	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if user, err := r.users.FindByID(id); err == nil {
			users = append(users, *user)
		}
	}
	if offset >= len(users) {
		return []models.User{}, nil
	}
	end := offset + limit
	if end > len(users) {
		end = len(users)
	}
	return users[offset:end], nil
}

func (r *fakeBanRepo) CountActive() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[uint]bool)
	for _, ban := range r.bans {
		if ban.Status == models.BanStatusActive {
			seen[ban.UserID] = true
		}
	}
	return int64(len(seen)), nil
}

func (r *fakeBanRepo) totalRows() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bans)
}

type fakeLogRepo struct {
	mu      sync.Mutex
	entries []*models.Log
	nextID  uint
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{nextID: 1}
}

func (r *fakeLogRepo) Create(entry *models.Log) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = r.nextID
	r.nextID++
	clone := *entry
	r.entries = append(r.entries, &clone)
	return nil
}

func (r *fakeLogRepo) FindByID(id uint) (*models.Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.entries {
		if entry.ID == id {
			clone := *entry
			return &clone, nil
		}
	}
	return nil, repositories.ErrLogNotFound
}

func (r *fakeLogRepo) FindWithFilter(filter repositories.LogFilter) ([]models.Log, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]models.Log, 0)
	for _, entry := range r.entries {
		if filter.Level != 0 && entry.Level != filter.Level {
			continue
		}
		if filter.Status != "" && entry.Status != filter.Status {
			continue
		}
		if filter.Name != "" && !strings.Contains(entry.Name, filter.Name) {
			continue
		}
		matched = append(matched, *entry)
	}
	return matched, int64(len(matched)), nil
}

func (r *fakeLogRepo) UpdateStatus(id uint, status models.LogStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.entries {
		if entry.ID == id {
			entry.Status = status
			return nil
		}
	}
	return repositories.ErrLogNotFound
}

func (r *fakeLogRepo) MarkAllRead() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var updated int64
	for _, entry := range r.entries {
		if entry.Status == models.LogStatusUnread {
			entry.Status = models.LogStatusRead
			updated++
		}
	}
	return updated, nil
}

func (r *fakeLogRepo) CountByStatus(status models.LogStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, entry := range r.entries {
		if entry.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeLogRepo) all() []models.Log {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]models.Log, 0, len(r.entries))
	for _, entry := range r.entries {
		all = append(all, *entry)
	}
	return all
}

type fakeAuditRepo struct {
	mu        sync.Mutex
	apiAccess []models.APIAccessLog
	sent      []models.SentNotificationLog
}

func newFakeAuditRepo() *fakeAuditRepo {
	return &fakeAuditRepo{}
}

func (r *fakeAuditRepo) CreateAPIAccess(entry *models.APIAccessLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = uint(len(r.apiAccess) + 1)
	r.apiAccess = append(r.apiAccess, *entry)
	return nil
}

func (r *fakeAuditRepo) FindAPIAccessByUser(userID uint, limit, offset int) ([]models.APIAccessLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]models.APIAccessLog, 0)
	for _, entry := range r.apiAccess {
		if entry.UserID == userID {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

func (r *fakeAuditRepo) CreateSentNotification(entry *models.SentNotificationLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = uint(len(r.sent) + 1)
	r.sent = append(r.sent, *entry)
	return nil
}

func (r *fakeAuditRepo) FindSentByUser(userID uint, limit, offset int) ([]models.SentNotificationLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]models.SentNotificationLog, 0)
	for _, entry := range r.sent {
		if entry.UserID == userID {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

type fakeSubscriberRepo struct {
	mu     sync.Mutex
	subs   []*models.NotificationSubscriber
	nextID uint
}

func newFakeSubscriberRepo() *fakeSubscriberRepo {
	return &fakeSubscriberRepo{nextID: 1}
}

func (r *fakeSubscriberRepo) Create(sub *models.NotificationSubscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub.ID = r.nextID
	r.nextID++
	clone := *sub
	r.subs = append(r.subs, &clone)
	return nil
}

func (r *fakeSubscriberRepo) FindByID(id uint) (*models.NotificationSubscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sub := range r.subs {
		if sub.ID == id {
			clone := *sub
			return &clone, nil
		}
	}
	return nil, repositories.ErrSubscriberNotFound
}

func (r *fakeSubscriberRepo) FindOpenByUser(userID uint) ([]models.NotificationSubscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]models.NotificationSubscriber, 0)
	for _, sub := range r.subs {
		if sub.UserID == userID && sub.Status == models.SubscriberStatusOpen {
			matched = append(matched, *sub)
		}
	}
	return matched, nil
}

func (r *fakeSubscriberRepo) FindByEndpoint(userID uint, endpoint string) (*models.NotificationSubscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sub := range r.subs {
		if sub.UserID == userID && sub.Endpoint == endpoint {
			clone := *sub
			return &clone, nil
		}
	}
	return nil, repositories.ErrSubscriberNotFound
}

func (r *fakeSubscriberRepo) Update(sub *models.NotificationSubscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.subs {
		if existing.ID == sub.ID {
			clone := *sub
			r.subs[i] = &clone
			return nil
		}
	}
	return repositories.ErrSubscriberNotFound
}

func (r *fakeSubscriberRepo) CloseAllForUser(userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sub := range r.subs {
		if sub.UserID == userID {
			sub.Status = models.SubscriberStatusClosed
		}
	}
	return nil
}

// fakeCookies - кук-хранилище в памяти для тестов.
type fakeCookies struct {
	values map[string]string
}

func newFakeCookies() *fakeCookies {
	return &fakeCookies{values: make(map[string]string)}
}

func (c *fakeCookies) Get(name string) (string, bool) {
	value, ok := c.values[name]
	return value, ok
}

func (c *fakeCookies) Set(name, value string, _ time.Time) {
	c.values[name] = value
}

func (c *fakeCookies) Unset(name string) {
	delete(c.values, name)
}
