package worker

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"trends-service/config"
	"trends-service/metrics"
	"trends-service/model"
	"trends-service/service"
	"trends-service/store"
)

const scanSubject = "radar.scan"

// Worker re-runs the aggregation pipeline for watched keywords. A ticker
// publishes one scan request per active keyword to NATS; subscribers run the
// scan and persist videos that cross the anomaly views threshold.
type Worker struct {
	cfg        *config.Config
	natsConn   *nats.Conn
	trends     *service.TrendService
	store      *store.Store
	cancelFunc context.CancelFunc
}

func NewWorker(cfg *config.Config, trends *service.TrendService, st *store.Store) (*Worker, error) {
	nc, err := nats.Connect(cfg.NATSUrl)
	if err != nil {
		return nil, err
	}

	return &Worker{
		cfg:      cfg,
		natsConn: nc,
		trends:   trends,
		store:    st,
	}, nil
}

func (w *Worker) Start(ctx context.Context) error {
	log.Println("Starting radar worker...")

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel

	_, err := w.natsConn.Subscribe(scanSubject, func(msg *nats.Msg) {
		w.handleScanRequest(workerCtx, msg)
	})
	if err != nil {
		return err
	}

	log.Printf("Successfully subscribed to %s", scanSubject)

	go w.startScheduler(workerCtx)

	log.Println("Radar worker started successfully")
	return nil
}

func (w *Worker) Stop() {
	log.Println("Stopping radar worker...")
	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	if w.natsConn != nil {
		w.natsConn.Close()
	}
}

func (w *Worker) handleScanRequest(ctx context.Context, msg *nats.Msg) {
	var req model.ScanRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		log.Printf("Failed to unmarshal scan request: %v", err)
		return
	}

	log.Printf("Radar: scanning for %q (request %s)", req.Keyword, req.RequestID)
	result := w.scanKeyword(ctx, req)

	resultData, _ := json.Marshal(result)
	w.natsConn.Publish(scanSubject+".result", resultData)
}

// scanKeyword runs one pipeline pass for a keyword and stores previously
// unseen videos whose views cross the anomaly threshold.
func (w *Worker) scanKeyword(ctx context.Context, req model.ScanRequest) model.ScanResult {
	videos := w.trends.SearchTrends(ctx, req.Keyword, "all", "views")

	stored := 0
	for _, v := range videos {
		if v.Views <= w.cfg.AnomalyViews || v.PlatformID == "" {
			continue
		}
		seen, err := w.store.VideoSeen(ctx, v.Platform, v.PlatformID)
		if err != nil {
			log.Printf("Radar: dedupe lookup failed for %s: %v", v.PlatformID, err)
			continue
		}
		if seen {
			continue
		}
		if err := w.store.SaveVideo(ctx, v); err != nil {
			log.Printf("Radar: failed to store video %s: %v", v.PlatformID, err)
			continue
		}
		stored++
		log.Printf("Radar: found anomalous video %s (%d views)", v.PlatformID, v.Views)
	}

	status := "ok"
	if len(videos) == 0 {
		status = "empty"
	}
	metrics.RadarScansTotal.WithLabelValues(status).Inc()

	return model.ScanResult{
		Keyword:     req.Keyword,
		RequestID:   req.RequestID,
		VideosFound: len(videos),
		NewStored:   stored,
		ProcessedAt: time.Now(),
	}
}

func (w *Worker) startScheduler(ctx context.Context) {
	log.Println("Radar scheduler started on this instance")

	ticker := time.NewTicker(w.cfg.RadarInterval)
	defer ticker.Stop()

	// Initial scan
	w.scheduleScans(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("Radar scheduler stopped")
			return
		case <-ticker.C:
			log.Println("Triggering scheduled radar scans")
			w.scheduleScans(ctx)
		}
	}
}

func (w *Worker) scheduleScans(ctx context.Context) {
	keywords, err := w.store.ActiveRadarKeywords(ctx)
	if err != nil {
		log.Printf("Failed to load radar keywords: %v", err)
		return
	}

	for _, k := range keywords {
		req := model.ScanRequest{
			Keyword:   k.Keyword,
			RequestID: generateRequestID(k.Keyword),
		}
		data, _ := json.Marshal(req)
		if err := w.natsConn.Publish(scanSubject, data); err != nil {
			log.Printf("Failed to publish scan request for %q: %v", k.Keyword, err)
		} else {
			log.Printf("Scheduled radar scan for %q", k.Keyword)
		}
	}
}

func generateRequestID(keyword string) string {
	timestamp := time.Now().Format("20060102-150405")
	return keyword + "-" + timestamp
}
