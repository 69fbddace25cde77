package config

import "fmt"

// RedisKeyStruct names every Redis key and channel the service touches.
type RedisKeyStruct struct {
	// AuditQueue holds attendance events waiting to be persisted by the audit worker.
	AuditQueue string
	// EventsChannel is the PubSub channel live attendance listeners subscribe to.
	EventsChannel string
}

// LoginAttemptsKey returns the fixed-window counter key for a client IP.
func (k *RedisKeyStruct) LoginAttemptsKey(clientIP string) string {
	return fmt.Sprintf("ratelimit:login:%s", clientIP)
}

var RedisKey = &RedisKeyStruct{
	AuditQueue:    "attendance_audit_queue",
	EventsChannel: "attendance:events",
}
