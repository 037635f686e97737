package service

import (
	"client-service/internal/entity"
	"client-service/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
)

type fakeUserRepo struct {
	users     map[string]string
	lookupErr error
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]string{}}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *entity.User) error {
	if _, ok := r.users[user.Username]; ok {
		return fmt.Errorf("duplicate entry %q", user.Username)
	}
	r.users[user.Username] = user.Password
	return nil
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*entity.User, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	hash, ok := r.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &entity.User{Username: username, Password: hash}, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, username, passwordHash string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.users[username] = passwordHash
	return nil
}

type fakeClientRepo struct {
	nextID       int64
	createErr    error
	beforeCreate func()
	created   []entity.ClientPayload
	deleted   []int64
}

func (r *fakeClientRepo) GetClients(context.Context) ([]entity.Client, error) {
	return []entity.Client{}, nil
}
func (r *fakeClientRepo) GetParts(context.Context) ([]entity.Part, error) { return []entity.Part{}, nil }
func (r *fakeClientRepo) GetPartsByClientID(context.Context, int64) ([]entity.Part, error) {
	return []entity.Part{}, nil
}
func (r *fakeClientRepo) GetProperties(context.Context) ([]entity.Property, error) {
	return []entity.Property{}, nil
}
func (r *fakeClientRepo) GetPropertiesByPartID(context.Context, int64) ([]entity.Property, error) {
	return []entity.Property{}, nil
}

func (r *fakeClientRepo) CreateClient(ctx context.Context, payload *entity.ClientPayload) (int64, int64, error) {
	if r.beforeCreate != nil {
		r.beforeCreate()
	}
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	if r.createErr != nil {
		return 0, 0, r.createErr
	}
	r.nextID++
	r.created = append(r.created, *payload)
	return r.nextID, r.nextID * 10, nil
}

func (r *fakeClientRepo) UpdateClient(context.Context, int64, int64, *entity.ClientPayload) error {
	return nil
}

func (r *fakeClientRepo) DeleteClient(_ context.Context, clientID int64) error {
	r.deleted = append(r.deleted, clientID)
	return nil
}

func (r *fakeClientRepo) Ping(context.Context) error { return nil }

type fakeKeyStore struct {
	keys   map[string]bool
	setErr error
}

func newFakeKeyStore() *fakeKeyStore {
	return &fakeKeyStore{keys: map[string]bool{}}
}

func (k *fakeKeyStore) SetNX(ctx context.Context, key string, _ interface{}, _ time.Duration) *redis.BoolCmd {
	if err := ctx.Err(); err != nil {
		return redis.NewBoolResult(false, err)
	}
	if k.setErr != nil {
		return redis.NewBoolResult(false, k.setErr)
	}
	if k.keys[key] {
		return redis.NewBoolResult(false, nil)
	}
	k.keys[key] = true
	return redis.NewBoolResult(true, nil)
}

func (k *fakeKeyStore) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if err := ctx.Err(); err != nil {
		return redis.NewIntResult(0, err)
	}
	var n int64
	for _, key := range keys {
		if k.keys[key] {
			delete(k.keys, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

type fakeWriter struct {
	messages []kafka.Message
	err      error
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

var errBroken = errors.New("broken")
