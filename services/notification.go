package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"bgv-management-api/config"
	"bgv-management-api/models"
)

// Notification kinds requested by the report workflow.
const (
	NotificationFinalReport    = "final_report"
	NotificationQcCheck        = "qc_check"
	NotificationReadyForReport = "ready_for_report"
)

const notificationModule = "client_master_tracker"

// NotificationParams carries the interpolation values for a report mail.
type NotificationParams struct {
	Application    models.ClientApplication
	Customer       models.Customer
	Salutation     string
	ReportType     string
	ReportDate     string
	InitiationDate string
	OverallStatus  string
	AttachmentURL  string
	AttachmentPath string
}

// ReportNotifier requests one of the three report notifications. The report
// workflow only decides which kind to send; rendering and SMTP delivery live
// behind this interface.
type ReportNotifier interface {
	FinalReport(p NotificationParams) error
	QcReportCheck(p NotificationParams) error
	ReadyForReport(p NotificationParams) error
}

// NotificationService sends templated mails. Templates and the SMTP account
// are database rows looked up by (module, action).
type NotificationService struct {
	db   *gorm.DB
	send func(cred config.SMTPCredential, to, cc []string, subject, html string, attachments []string) error
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db, send: config.SendMailWith}
}

func (s *NotificationService) FinalReport(p NotificationParams) error {
	return s.dispatch("final_report", p, p.AttachmentPath)
}

func (s *NotificationService) QcReportCheck(p NotificationParams) error {
	return s.dispatch("qc_report_check", p, "")
}

func (s *NotificationService) ReadyForReport(p NotificationParams) error {
	return s.dispatch("ready_for_report", p, "")
}

func (s *NotificationService) dispatch(action string, p NotificationParams, attachmentPath string) error {
	tmpl, err := s.fetchTemplate(notificationModule, action)
	if err != nil {
		return err
	}
	cred, err := s.fetchCredential(notificationModule)
	if err != nil {
		return err
	}

	to, cc := recipientLists(p.Customer)
	if len(to) == 0 {
		return fmt.Errorf("customer %d has no notification recipients", p.Customer.CustomerID)
	}

	data := map[string]string{
		"salutation":      p.Salutation,
		"applicant_name":  p.Application.Name,
		"application_id":  p.Application.ApplicationID,
		"customer_name":   p.Customer.Name,
		"overall_status":  p.OverallStatus,
		"report_type":     p.ReportType,
		"report_date":     p.ReportDate,
		"initiation_date": p.InitiationDate,
		"attachment_url":  p.AttachmentURL,
	}

	subject := applyPlaceholders(tmpl.Title, data)
	body := applyPlaceholders(tmpl.Template, data)

	var attachments []string
	if attachmentPath != "" {
		attachments = []string{attachmentPath}
	}
	return s.send(cred, to, cc, subject, body, attachments)
}

func (s *NotificationService) fetchTemplate(module, action string) (*models.EmailTemplate, error) {
	var tmpl models.EmailTemplate
	err := s.db.Where("module = ? AND action = ? AND status = ?", module, action, "active").First(&tmpl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no email template for (%s, %s)", module, action)
		}
		return nil, fmt.Errorf("failed to load email template (%s, %s): %w", module, action, err)
	}
	return &tmpl, nil
}

func (s *NotificationService) fetchCredential(module string) (config.SMTPCredential, error) {
	var row models.EmailCredential
	err := s.db.Where("module = ? AND status = ?", module, "active").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// fall back to the environment SMTP configuration
			return config.SMTPCredential{}, nil
		}
		return config.SMTPCredential{}, fmt.Errorf("failed to load smtp credential for %s: %w", module, err)
	}
	return config.SMTPCredential{
		Host:     row.Host,
		Port:     row.Port,
		Username: row.Username,
		Password: row.Password,
		From:     row.FromAddress,
	}, nil
}

// recipientLists resolves the customer's notification addresses: the stored
// JSON email array as To, the SPOC and escalation contacts as Cc.
func recipientLists(customer models.Customer) (to []string, cc []string) {
	if strings.TrimSpace(customer.Emails) != "" {
		var emails []string
		if err := json.Unmarshal([]byte(customer.Emails), &emails); err == nil {
			for _, e := range emails {
				if e = strings.TrimSpace(e); e != "" {
					to = append(to, e)
				}
			}
		}
	}
	for _, e := range []string{customer.ClientSpoc, customer.EscalationManager, customer.DirectorEmail} {
		if e = strings.TrimSpace(e); e != "" {
			cc = append(cc, e)
		}
	}
	return to, cc
}

// applyPlaceholders substitutes {{key}} markers in a stored template.
func applyPlaceholders(text string, data map[string]string) string {
	for key, value := range data {
		text = strings.ReplaceAll(text, "{{"+key+"}}", value)
	}
	return text
}
