package queue

import (
	"timelink/core/config"
	"timelink/core/logger"

	"github.com/hibiken/asynq"
)

// Queue bundles the asynq client, worker and periodic scheduler used for
// availability warm-up jobs.
type Queue struct {
	client    *asynq.Client
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
}

func New(cfg config.RedisConfig) *Queue {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	return &Queue{
		client: asynq.NewClient(redisOpt),
		server: asynq.NewServer(redisOpt, asynq.Config{
			Concurrency: 4,
		}),
		mux:       asynq.NewServeMux(),
		scheduler: asynq.NewScheduler(redisOpt, nil),
	}
}

// HandleFunc registers a task handler.
func (q *Queue) HandleFunc(pattern string, handler asynq.HandlerFunc) {
	q.mux.HandleFunc(pattern, handler)
}

// Enqueue submits a task for immediate processing.
func (q *Queue) Enqueue(task *asynq.Task, opts ...asynq.Option) error {
	info, err := q.client.Enqueue(task, opts...)
	if err != nil {
		logger.Error("Queue:Enqueue", err, "type", task.Type())
		return err
	}
	logger.Info("Queue:Enqueue:Success", "type", task.Type(), "id", info.ID, "queue", info.Queue)
	return nil
}

// Schedule registers a periodic task with a cron spec.
func (q *Queue) Schedule(cronspec string, task *asynq.Task) error {
	entryID, err := q.scheduler.Register(cronspec, task)
	if err != nil {
		logger.Error("Queue:Schedule", err, "type", task.Type(), "cron", cronspec)
		return err
	}
	logger.Info("Queue:Schedule:Registered", "type", task.Type(), "cron", cronspec, "entry_id", entryID)
	return nil
}

// Start runs the worker and scheduler. Non-blocking.
func (q *Queue) Start() error {
	if err := q.server.Start(q.mux); err != nil {
		return err
	}
	return q.scheduler.Start()
}

func (q *Queue) Shutdown() {
	q.scheduler.Shutdown()
	q.server.Shutdown()
	if err := q.client.Close(); err != nil {
		logger.Error("Queue:Shutdown:CloseClient", err)
	}
}
