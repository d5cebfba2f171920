/*-------------------------------------------------------------------------
 *
 * email.go
 *    Email delivery channel for approval notifications
 *
 * Sends approval lifecycle notifications over SMTP. Authority-channel
 * notifications go to the tenant's HR mailbox; employee notifications
 * are looked up on the employee record.
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/notifications/email.go
 *
 *-------------------------------------------------------------------------
 */

package notifications

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/teamai-botivate/HR-Support/internal/config"
	"github.com/teamai-botivate/HR-Support/internal/db"
	"github.com/teamai-botivate/HR-Support/internal/records"
)

/* EmailDeliverer pushes stored notifications out over SMTP */
type EmailDeliverer struct {
	smtpHost     string
	smtpPort     int
	smtpUser     string
	smtpPassword string
	smtpFrom     string
	hrEmail      string
	adapter      records.Adapter
	schema       records.SchemaMap
	enabled      bool
	send         func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

/* NewEmailDeliverer creates an email channel. The record adapter is
 * used to resolve employee addresses; it may be nil when the schema
 * carries no email field. */
func NewEmailDeliverer(cfg config.SMTPConfig, hrEmail string, adapter records.Adapter, schema records.SchemaMap) *EmailDeliverer {
	return &EmailDeliverer{
		smtpHost:     cfg.Host,
		smtpPort:     cfg.Port,
		smtpUser:     cfg.User,
		smtpPassword: cfg.Password,
		smtpFrom:     cfg.From,
		hrEmail:      hrEmail,
		adapter:      adapter,
		schema:       schema,
		enabled:      cfg.Host != "" && cfg.Port > 0,
		send:         smtp.SendMail,
	}
}

func (e *EmailDeliverer) Name() string {
	return "email"
}

/* Deliver sends one notification as a plain-text email */
func (e *EmailDeliverer) Deliver(ctx context.Context, n *db.Notification) error {
	if !e.enabled {
		return fmt.Errorf("email channel not configured")
	}

	to, err := e.resolveAddress(ctx, n)
	if err != nil {
		return err
	}
	if !strings.Contains(to, "@") {
		return fmt.Errorf("invalid email address: %s", to)
	}

	msg := fmt.Sprintf("From: %s\r\n", e.smtpFrom)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", n.Title)
	msg += "\r\n"
	msg += n.Message

	auth := smtp.PlainAuth("", e.smtpUser, e.smtpPassword, e.smtpHost)
	addr := fmt.Sprintf("%s:%d", e.smtpHost, e.smtpPort)
	if err := e.send(addr, auth, e.smtpFrom, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("email send failed: to='%s', subject='%s', error=%w", to, n.Title, err)
	}
	return nil
}

func (e *EmailDeliverer) resolveAddress(ctx context.Context, n *db.Notification) (string, error) {
	if n.TargetEmployeeID == db.AuthorityTarget {
		if e.hrEmail == "" {
			return "", fmt.Errorf("no HR mailbox configured for authority notifications")
		}
		return e.hrEmail, nil
	}

	if e.adapter == nil || e.schema.Email == "" {
		return "", fmt.Errorf("no email field mapped for employee notifications")
	}
	record, err := records.Resolve(ctx, e.adapter, e.schema.PrimaryKey, n.TargetEmployeeID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve employee address: employee='%s', error=%w",
			n.TargetEmployeeID, err)
	}
	email := strings.TrimSpace(record.GetString(e.schema.Email))
	if email == "" {
		return "", fmt.Errorf("employee record has no email address: employee='%s'", n.TargetEmployeeID)
	}
	return email, nil
}

/* IsEnabled returns whether the channel is configured */
func (e *EmailDeliverer) IsEnabled() bool {
	return e.enabled
}
