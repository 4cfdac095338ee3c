// status.go - privacy-conscious visitor tracking and a read-only status page
package main

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/showcase/internal/cache"
	"github.com/Zachkp/showcase/internal/presence"
)

type VisitorStats struct {
	TotalVisitors    int64 `json:"total_visitors"`
	UniqueVisitors   int64 `json:"unique_visitors"`
	VisitorsToday    int64 `json:"visitors_today"`
	VisitorsThisWeek int64 `json:"visitors_this_week"`
}

type SiteStatus struct {
	Projects    int             `json:"projects"`
	Experiences int             `json:"experiences"`
	Cache       []cache.Entry   `json:"cache"`
	Presence    presence.Status `json:"presence"`
	Visitors    *VisitorStats   `json:"visitors"`
}

// visitorLog records page views with hashed IPs in the site database.
type visitorLog struct {
	db   *sql.DB
	salt string
}

func newVisitorLog(db *sql.DB) (*visitorLog, error) {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS visitors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,
		user_agent TEXT,
		path TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return nil, fmt.Errorf("create visitors table: %w", err)
	}

	salt, err := generateSalt()
	if err != nil {
		return nil, err
	}

	log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")
	return &visitorLog{db: db, salt: salt}, nil
}

func generateSalt() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Hash IP address so raw addresses never hit the database (consistent per IP)
func (v *visitorLog) hashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(ip + v.salt))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func (v *visitorLog) record(ip, userAgent, path string) error {
	_, err := v.db.Exec(`
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, v.hashIP(ip), userAgent, path, time.Now().UTC())
	return err
}

// Middleware tracks full page views. Partials, assets and status pages are skipped,
// and so is anyone sending DNT.
func (v *visitorLog) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path != "/" || c.GetHeader("DNT") == "1" || c.GetHeader("HX-Request") == "true" {
			c.Next()
			return
		}

		ip, ua, reqID := c.ClientIP(), c.GetHeader("User-Agent"), c.GetString(requestIDKey)
		go func() {
			if err := v.record(ip, ua, path); err != nil {
				log.Printf("Error recording visitor (%s): %v", reqID, err)
			}
		}()
		c.Next()
	}
}

// cleanup removes visitor rows older than 12 months.
func (v *visitorLog) cleanup() {
	result, err := v.db.Exec(`DELETE FROM visitors WHERE timestamp < ?`, time.Now().UTC().AddDate(-1, 0, 0))
	if err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
		return
	}

	rowsDeleted, _ := result.RowsAffected()
	if rowsDeleted > 0 {
		log.Printf("Privacy cleanup: Removed %d visitor records older than 12 months", rowsDeleted)
	}
}

func (v *visitorLog) stats() (*VisitorStats, error) {
	stats := &VisitorStats{}
	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	queries := []struct {
		dest  *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{startOfDay}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{now.AddDate(0, 0, -7)}},
	}
	for _, q := range queries {
		if err := v.db.QueryRow(q.query, q.args...).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("visitor stats: %w", err)
		}
	}
	return stats, nil
}

const requestIDKey = "request_id"

// requestID tags every request with an id, reusing an incoming X-Request-ID.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader("X-Request-ID"))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (a *app) siteStatus() (*SiteStatus, error) {
	projects, experiences := a.loader.Snapshot()
	st := &SiteStatus{
		Projects:    len(projects),
		Experiences: len(experiences),
		Presence:    a.poller.Status(),
	}

	if a.store != nil {
		entries, err := a.store.Entries()
		if err != nil {
			return nil, err
		}
		st.Cache = entries
	}
	if a.visitors != nil {
		vs, err := a.visitors.stats()
		if err != nil {
			return nil, err
		}
		st.Visitors = vs
	}
	return st, nil
}

func (a *app) setupStatusRoutes(r *gin.Engine) {
	r.GET("/status", func(c *gin.Context) {
		st, err := a.siteStatus()
		if err != nil {
			log.Printf("Error loading status: %v", err)
			c.HTML(http.StatusInternalServerError, "status.html", gin.H{
				"error": "Failed to load status",
			})
			return
		}
		c.HTML(http.StatusOK, "status.html", gin.H{
			"status": st,
		})
	})

	r.GET("/status/api", func(c *gin.Context) {
		st, err := a.siteStatus()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, st)
	})
}
