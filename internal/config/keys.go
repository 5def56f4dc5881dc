package config

import "fmt"

// CacheKeyStruct builds the Redis keys used for assessment sessions
// and live progress channels.
type CacheKeyStruct struct{}

// AssessmentSessionKey returns the cache key for an applicant's
// assessment session.
func (r *CacheKeyStruct) AssessmentSessionKey(applicantID string) string {
	return fmt.Sprintf("applicant:%s:session", applicantID)
}

// AssessmentProgressChannel returns the Redis PubSub channel carrying
// live grading progress for an applicant.
func (r *CacheKeyStruct) AssessmentProgressChannel(applicantID string) string {
	return fmt.Sprintf("applicant:%s:progress", applicantID)
}

var CacheKey = &CacheKeyStruct{}

// WorkerKeyStruct names the Redis queues drained by the background
// persistence workers.
type WorkerKeyStruct struct {
	PersistScoresQueue string
	PersistFraudQueue  string
}

var WorkerKey = &WorkerKeyStruct{
	PersistScoresQueue: "persist_scores_queue",
	PersistFraudQueue:  "persist_fraud_queue",
}
