package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"claim-service/internal/models"
	"claim-service/internal/worker"

	"github.com/google/uuid"
)

type memAssessmentStore struct {
	mu    sync.Mutex
	items map[uuid.UUID]models.DamageAssessment
	fail  error
}

func newMemAssessmentStore() *memAssessmentStore {
	return &memAssessmentStore{items: map[uuid.UUID]models.DamageAssessment{}}
}

func (m *memAssessmentStore) Create(_ context.Context, a *models.DamageAssessment) error {
	if m.fail != nil {
		return m.fail
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[a.ID] = *a
	return nil
}

func (m *memAssessmentStore) GetByID(_ context.Context, id uuid.UUID) (*models.DamageAssessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("failed to get assessment: %w", sql.ErrNoRows)
	}
	return &a, nil
}

func (m *memAssessmentStore) ListByOwner(_ context.Context, ownerID string) ([]models.DamageAssessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.DamageAssessment
	for _, a := range m.items {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAssessmentStore) ListByItem(_ context.Context, ownerID string, itemID uuid.UUID) ([]models.DamageAssessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.DamageAssessment
	for _, a := range m.items {
		if a.OwnerID == ownerID && a.ItemID == itemID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAssessmentStore) UpdateLocked(_ context.Context, id uuid.UUID, mutate func(a *models.DamageAssessment) error) (*models.DamageAssessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	a, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("failed to lock assessment: %w", sql.ErrNoRows)
	}
	a.CompletedSteps = slices.Clone(a.CompletedSteps)
	a.Photos = slices.Clone(a.Photos)
	if err := mutate(&a); err != nil {
		return nil, err
	}
	m.items[id] = a
	return &a, nil
}

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	fail    error
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memStorage) UploadBytes(_ context.Context, bucketName, objectName string, data []byte, contentType string) error {
	if m.fail != nil {
		return m.fail
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[bucketName+"/"+objectName] = data
	m.types[bucketName+"/"+objectName] = contentType
	return nil
}

func (m *memStorage) GetFileBytes(_ context.Context, bucketName, objectName string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[bucketName+"/"+objectName]
	if !ok {
		return nil, errors.New("object not found")
	}
	return data, nil
}

func (m *memStorage) DeleteFile(_ context.Context, bucketName, objectName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, bucketName+"/"+objectName)
	delete(m.types, bucketName+"/"+objectName)
	return nil
}

func (m *memStorage) GetPresignedURL(_ context.Context, bucketName, objectName string, _ time.Duration) (string, error) {
	return "https://storage.test/" + bucketName + "/" + objectName, nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	required []string
	ready    []string
	failed   []string
}

func (r *recordingNotifier) NotifyProfessionalAssessmentRequired(_ context.Context, _, assessmentID, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.required = append(r.required, assessmentID)
	return nil
}

func (r *recordingNotifier) NotifyClaimDocumentReady(_ context.Context, _, fileName, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ready = append(r.ready, fileName)
	return nil
}

func (r *recordingNotifier) NotifyClaimDocumentFailed(_ context.Context, _, fileName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = append(r.failed, fileName)
	return nil
}

type fakeAI struct {
	available bool
	resp      map[string]any
	err       error
	prompts   []string
}

func (f *fakeAI) Available() bool { return f.available }

func (f *fakeAI) Generate(_ context.Context, prompt string, _ [][]byte) (map[string]any, error) {
	f.prompts = append(f.prompts, prompt)
	return f.resp, f.err
}

type memTemplateCache struct {
	items map[string]models.ClaimTemplate
	err   error
	sets  int
}

func newMemTemplateCache() *memTemplateCache {
	return &memTemplateCache{items: map[string]models.ClaimTemplate{}}
}

func (m *memTemplateCache) GetTemplate(_ context.Context, key string) (*models.ClaimTemplate, error) {
	if m.err != nil {
		return nil, m.err
	}
	t, ok := m.items[key]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (m *memTemplateCache) SetTemplate(_ context.Context, key string, tmpl models.ClaimTemplate, _ time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.sets++
	m.items[key] = tmpl
	return nil
}

type memCustomTemplateStore struct {
	items map[uuid.UUID]models.CustomClaimTemplate
}

func newMemCustomTemplateStore() *memCustomTemplateStore {
	return &memCustomTemplateStore{items: map[uuid.UUID]models.CustomClaimTemplate{}}
}

func (m *memCustomTemplateStore) Create(_ context.Context, t *models.CustomClaimTemplate) error {
	m.items[t.ID] = *t
	return nil
}

func (m *memCustomTemplateStore) GetByID(_ context.Context, id uuid.UUID) (*models.CustomClaimTemplate, error) {
	t, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("failed to get custom template: %w", sql.ErrNoRows)
	}
	return &t, nil
}

func (m *memCustomTemplateStore) ListByOwner(_ context.Context, ownerID string) ([]models.CustomClaimTemplate, error) {
	var out []models.CustomClaimTemplate
	for _, t := range m.items {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memCustomTemplateStore) Delete(_ context.Context, id uuid.UUID, ownerID string) error {
	t, ok := m.items[id]
	if !ok || t.OwnerID != ownerID {
		return fmt.Errorf("failed to delete custom template: %w", sql.ErrNoRows)
	}
	delete(m.items, id)
	return nil
}

// inlineJobs runs submitted jobs synchronously.
type inlineJobs struct {
	reject error
}

func (i inlineJobs) SubmitJob(job worker.Job) error {
	if i.reject != nil {
		return i.reject
	}
	_ = job(context.Background())
	return nil
}

type countingJobs struct {
	mu        sync.Mutex
	submitted int
}

func (c *countingJobs) SubmitJob(job worker.Job) error {
	c.mu.Lock()
	c.submitted++
	c.mu.Unlock()
	return job(context.Background())
}
