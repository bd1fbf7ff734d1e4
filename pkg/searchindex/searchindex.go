package searchindex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrDocumentNotFound is returned by partial updates against a document that
// was never indexed. Callers treat it as an accepted consistency gap.
var ErrDocumentNotFound = errors.New("search index document not found")

// CareerEntry is the denormalized career shape stored on a document.
type CareerEntry struct {
	CompanyName   string  `json:"company_name"`
	ContractType  string  `json:"contract_type"`
	Profession    *string `json:"profession"`
	Office        *string `json:"office"`
	PositionName  *string `json:"position_name"`
	IsManager     bool    `json:"is_manager"`
	IsNewGraduate bool    `json:"is_new_graduate"`
}

// ConsultantDocument is the public search document of a consultant.
type ConsultantDocument struct {
	UserAccountID           uint          `json:"user_account_id"`
	Careers                 []CareerEntry `json:"careers"`
	NumOfCareers            int           `json:"num_of_careers"`
	FeePerHourInYen         int           `json:"fee_per_hour_in_yen"`
	IsBankAccountRegistered bool          `json:"is_bank_account_registered"`
	Rating                  *float64      `json:"rating"`
	NumOfRated              int           `json:"num_of_rated"`
	Disabled                bool          `json:"disabled"`
}

// Client is the secondary search index. It supports a full document write and
// scripted partial updates (career append, scalar patch). Nothing here is
// transactional with the primary store.
type Client interface {
	CreateDocument(ctx context.Context, documentID string, doc ConsultantDocument) error
	AddCareer(ctx context.Context, documentID string, career CareerEntry) error
	UpdateRating(ctx context.Context, documentID string, rating float64, numOfRated int) error
	PatchFields(ctx context.Context, documentID string, fields map[string]interface{}) error
}

type redisIndex struct {
	rdb *redis.Client
}

func NewRedisIndex(rdb *redis.Client) Client {
	return &redisIndex{rdb: rdb}
}

// OpenRedis connects and pings so startup fails fast on a bad address.
func OpenRedis(addr string, db int) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return r, nil
}

func docKey(documentID string) string { return "consultant:" + documentID }

func (s *redisIndex) CreateDocument(ctx context.Context, documentID string, doc ConsultantDocument) error {
	careers, err := json.Marshal(doc.Careers)
	if err != nil {
		return err
	}
	fields := map[string]interface{}{
		"user_account_id":            doc.UserAccountID,
		"careers":                    string(careers),
		"num_of_careers":             doc.NumOfCareers,
		"fee_per_hour_in_yen":        doc.FeePerHourInYen,
		"is_bank_account_registered": strconv.FormatBool(doc.IsBankAccountRegistered),
		"num_of_rated":               doc.NumOfRated,
		"disabled":                   strconv.FormatBool(doc.Disabled),
	}
	if doc.Rating != nil {
		fields["rating"] = *doc.Rating
	}
	return s.rdb.HSet(ctx, docKey(documentID), fields).Err()
}

// AddCareer appends to the careers array and bumps num_of_careers, the redis
// analog of a scripted array-append update.
func (s *redisIndex) AddCareer(ctx context.Context, documentID string, career CareerEntry) error {
	key := docKey(documentID)
	raw, err := s.rdb.HGet(ctx, key, "careers").Result()
	if errors.Is(err, redis.Nil) {
		return ErrDocumentNotFound
	}
	if err != nil {
		return err
	}
	var careers []CareerEntry
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &careers); err != nil {
			return fmt.Errorf("corrupt careers field on %s: %w", key, err)
		}
	}
	careers = append(careers, career)
	updated, err := json.Marshal(careers)
	if err != nil {
		return err
	}
	return s.rdb.HSet(ctx, key, map[string]interface{}{
		"careers":        string(updated),
		"num_of_careers": len(careers),
	}).Err()
}

func (s *redisIndex) UpdateRating(ctx context.Context, documentID string, rating float64, numOfRated int) error {
	return s.PatchFields(ctx, documentID, map[string]interface{}{
		"rating":       rating,
		"num_of_rated": numOfRated,
	})
}

func (s *redisIndex) PatchFields(ctx context.Context, documentID string, fields map[string]interface{}) error {
	key := docKey(documentID)
	exists, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return ErrDocumentNotFound
	}
	return s.rdb.HSet(ctx, key, fields).Err()
}
