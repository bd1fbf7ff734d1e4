package testutil

import (
	"context"
	"io"
	"sync"

	"consulto/internal/repository"
	"consulto/pkg/searchindex"
	"consulto/pkg/storage"
)

// TxMock runs the unit of work directly against the given repos bundle, no
// transaction involved.
type TxMock struct {
	Repos repository.Repos
}

var _ repository.TxManager = (*TxMock)(nil)

func (m *TxMock) WithinTx(ctx context.Context, fn func(r repository.Repos) error) error {
	return fn(m.Repos)
}

// IndexFake records every search index call in order.
type IndexFake struct {
	mu        sync.Mutex
	Created   map[string]searchindex.ConsultantDocument
	Careers   map[string][]searchindex.CareerEntry
	Ratings   map[string]float64
	Counts    map[string]int
	Patches   map[string]map[string]interface{}
	CreateErr error
	AddErr    error
	RatingErr error
	PatchErr  error
}

var _ searchindex.Client = (*IndexFake)(nil)

func NewIndexFake() *IndexFake {
	return &IndexFake{
		Created: make(map[string]searchindex.ConsultantDocument),
		Careers: make(map[string][]searchindex.CareerEntry),
		Ratings: make(map[string]float64),
		Counts:  make(map[string]int),
		Patches: make(map[string]map[string]interface{}),
	}
}

func (f *IndexFake) CreateDocument(ctx context.Context, documentID string, doc searchindex.ConsultantDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return f.CreateErr
	}
	f.Created[documentID] = doc
	return nil
}

func (f *IndexFake) AddCareer(ctx context.Context, documentID string, entry searchindex.CareerEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.AddErr != nil {
		return f.AddErr
	}
	f.Careers[documentID] = append(f.Careers[documentID], entry)
	return nil
}

func (f *IndexFake) UpdateRating(ctx context.Context, documentID string, rating float64, numOfRated int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.RatingErr != nil {
		return f.RatingErr
	}
	f.Ratings[documentID] = rating
	f.Counts[documentID] = numOfRated
	return nil
}

func (f *IndexFake) PatchFields(ctx context.Context, documentID string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PatchErr != nil {
		return f.PatchErr
	}
	if f.Patches[documentID] == nil {
		f.Patches[documentID] = make(map[string]interface{})
	}
	for k, v := range fields {
		f.Patches[documentID][k] = v
	}
	return nil
}

// StorageFake records uploaded and deleted keys.
type StorageFake struct {
	mu        sync.Mutex
	Uploaded  []string
	Deleted   []string
	UploadErr error
	DeleteErr error
}

var _ storage.Client = (*StorageFake)(nil)

func (f *StorageFake) Upload(ctx context.Context, key string, file io.Reader) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UploadErr != nil {
		return f.UploadErr
	}
	f.Uploaded = append(f.Uploaded, key)
	return nil
}

func (f *StorageFake) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.Deleted = append(f.Deleted, key)
	return nil
}

// MailerFake records every message.
type MailerFake struct {
	mu      sync.Mutex
	Sent    []SentMail
	SendErr error
}

type SentMail struct {
	To      string
	From    string
	Subject string
	Body    string
}

func (f *MailerFake) Send(to, from, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendErr != nil {
		return f.SendErr
	}
	f.Sent = append(f.Sent, SentMail{To: to, From: from, Subject: subject, Body: body})
	return nil
}
