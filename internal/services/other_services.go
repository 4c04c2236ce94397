// internal/services/other_services.go
// Notification and analytics/audit services.
//
// The teacher's PaymentService has no analog here (dropped per
// DESIGN.md: Americano tournaments in this domain carry no entry-fee
// concept) and is not adapted. NotificationService keeps the teacher's
// stub-logging shape, repurposed to round/score/podium events.
// AnalyticsService keeps the teacher's Mongo event-log shape; the
// administrative audit trail is written separately, by
// repositories.AuditRepository.

package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"padeltour/internal/config"
	"padeltour/internal/models"
)

// Broadcaster is satisfied by *websocket.Hub. Declared here instead of
// imported directly so this package doesn't depend on internal/websocket
// (which already depends on services.Container).
type Broadcaster interface {
	BroadcastTournamentUpdate(tournamentID string, updateType string, data interface{})
}

// NotificationService handles live-event notifications. Hub is wired in
// after the websocket hub is constructed (server.go), since the hub
// itself is built from the service container.
type NotificationService struct {
	config *config.Config
	logger *log.Logger
	hub    Broadcaster
}

func NewNotificationService(cfg *config.Config, logger *log.Logger) *NotificationService {
	return &NotificationService{config: cfg, logger: logger}
}

// SetHub wires the websocket hub once it exists. A nil hub is fine: the
// notification still logs, it just doesn't broadcast.
func (s *NotificationService) SetHub(hub Broadcaster) {
	s.hub = hub
}

func (s *NotificationService) broadcast(tournamentID, eventType string, data interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastTournamentUpdate(tournamentID, eventType, data)
}

func (s *NotificationService) NotifyTournamentStarted(t *models.Tournament) {
	s.logger.Printf("tournament started: %s", t.Name)
	s.broadcast(t.ID, "tournament_started", map[string]interface{}{"tournament_id": t.ID, "total_rounds": t.TotalRounds})
}

func (s *NotificationService) NotifyRoundGenerated(t *models.Tournament, round int) {
	s.logger.Printf("round %d started for tournament %s", round, t.ID)
	s.broadcast(t.ID, "round_started", map[string]interface{}{"tournament_id": t.ID, "round": round})
}

func (s *NotificationService) NotifyMatchResult(m *models.Match) {
	s.logger.Printf("match %s result recorded", m.ID)
	s.broadcast(m.TournamentID, "match_score_recorded", map[string]interface{}{
		"match_id":     m.ID,
		"round_number": m.RoundNumber,
		"team1_score":  m.Team1Score,
		"team2_score":  m.Team2Score,
	})
}

func (s *NotificationService) NotifyTournamentCompleted(t *models.Tournament) {
	s.logger.Printf("tournament completed: %s", t.Name)
	s.broadcast(t.ID, "tournament_finished", map[string]interface{}{"tournament_id": t.ID})
}

// ========================================

// AnalyticsService handles analytics and event tracking in MongoDB.
type AnalyticsService struct {
	db     *mongo.Database
	cache  *CacheService
	logger *log.Logger
}

func NewAnalyticsService(db *mongo.Database, cache *CacheService, logger *log.Logger) *AnalyticsService {
	return &AnalyticsService{db: db, cache: cache, logger: logger}
}

// LogEvent logs an analytics event; failures are swallowed because
// analytics must never break a tournament-lifecycle operation.
func (s *AnalyticsService) LogEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	event := bson.M{
		"type":       eventType,
		"data":       data,
		"created_at": time.Now(),
	}
	if _, err := s.db.Collection("analytics_events").InsertOne(ctx, event); err != nil {
		s.logger.Printf("Failed to log analytics event %s: %v", eventType, err)
	}
}

// GetPlatformStats retrieves platform-wide statistics, cached briefly
// since it aggregates across every tournament.
func (s *AnalyticsService) GetPlatformStats(ctx context.Context) (map[string]interface{}, error) {
	var stats map[string]interface{}
	if err := s.cache.Get("platform_stats", &stats); err == nil {
		return stats, nil
	}

	count, err := s.db.Collection("analytics_events").CountDocuments(ctx, bson.M{})
	if err != nil {
		count = 0
	}
	stats = map[string]interface{}{
		"total_events": count,
	}
	s.cache.Set("platform_stats", stats, 5*time.Minute)
	return stats, nil
}
