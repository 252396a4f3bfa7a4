package utils

import (
	"context"
	"errors"

	"betogether-admin/internal/shared/contextkeys"
)

// Common context errors
var (
	ErrSessionIDNotFound   = errors.New("sessionID not found in context")
	ErrSessionIDNotString  = errors.New("sessionID in context is not a string")
	ErrAdminEmailNotFound  = errors.New("adminEmail not found in context")
	ErrAdminEmailNotString = errors.New("adminEmail in context is not a string")
	ErrRequestIDNotFound   = errors.New("requestID not found in context")
	ErrRequestIDNotString  = errors.New("requestID in context is not a string")
)

func stringFromContext(ctx context.Context, key interface{}, notFound, notString error) (string, error) {
	val := ctx.Value(key)
	if val == nil {
		return "", notFound
	}
	s, ok := val.(string)
	if !ok {
		return "", notString
	}
	return s, nil
}

// GetSessionIDFromContext retrieves the console session id from the context.
func GetSessionIDFromContext(ctx context.Context) (string, error) {
	return stringFromContext(ctx, contextkeys.SessionIDKey, ErrSessionIDNotFound, ErrSessionIDNotString)
}

// GetAdminEmailFromContext retrieves the administrator email from the context.
func GetAdminEmailFromContext(ctx context.Context) (string, error) {
	return stringFromContext(ctx, contextkeys.AdminEmailKey, ErrAdminEmailNotFound, ErrAdminEmailNotString)
}

// GetRequestIDFromContext retrieves the request ID from the context.
func GetRequestIDFromContext(ctx context.Context) (string, error) {
	return stringFromContext(ctx, contextkeys.RequestIDKey, ErrRequestIDNotFound, ErrRequestIDNotString)
}

// Context builder functions

// WithSessionID adds the console session id to context
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, contextkeys.SessionIDKey, sessionID)
}

// WithAdminEmail adds the administrator email to context
func WithAdminEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, contextkeys.AdminEmailKey, email)
}

// WithRequestID adds request ID to context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextkeys.RequestIDKey, requestID)
}

// WithComponent adds component name to context
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, contextkeys.ComponentKey, component)
}

// WithOperation adds operation name to context
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, contextkeys.OperationKey, operation)
}
