package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrSendDriverNotificationsCommandIsNotConstructed = errors.New(
	"SendDriverNotificationsCommand must be created via NewSendDriverNotificationsCommand constructor",
)

// SendDriverNotificationsCommand fans a message out to the drivers of an
// order's active trips. The receiver set is explicit, so role and participant
// resolution is bypassed entirely.
type SendDriverNotificationsCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	organizationID kernel.UUID
	subject        string
	message        string
	sentBy         kernel.UUID

	guard guard.ConstructorGuard
}

// NewSendDriverNotificationsCommand creates a command to notify an order's drivers.
func NewSendDriverNotificationsCommand(
	orderID kernel.UUID,
	organizationID kernel.UUID,
	subject string,
	message string,
	sentBy kernel.UUID,
) (SendDriverNotificationsCommand, error) {
	cmd := SendDriverNotificationsCommand{
		message: message,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrganizationID(organizationID),
		cmd.setSubject(subject),
		cmd.setSentBy(sentBy),
	); err != nil {
		return SendDriverNotificationsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SendDriverNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrSendDriverNotificationsCommandIsNotConstructed)
}

// OrderID returns the order whose drivers are notified.
func (c SendDriverNotificationsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrganizationID returns the organization scope of the operation.
func (c SendDriverNotificationsCommand) OrganizationID() kernel.UUID {
	return c.organizationID
}

// Subject returns the notification subject line.
func (c SendDriverNotificationsCommand) Subject() string {
	return c.subject
}

// Message returns the notification body.
func (c SendDriverNotificationsCommand) Message() string {
	return c.message
}

// SentBy returns the acting user.
func (c SendDriverNotificationsCommand) SentBy() kernel.UUID {
	return c.sentBy
}

func (c *SendDriverNotificationsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SendDriverNotificationsCommand) setOrganizationID(organizationID kernel.UUID) error {
	if err := organizationID.Validate(); err != nil {
		return err
	}

	c.organizationID = organizationID
	return nil
}

func (c *SendDriverNotificationsCommand) setSubject(subject string) error {
	if subject == "" {
		return errs.NewValueIsRequiredError("subject")
	}

	c.subject = subject
	return nil
}

func (c *SendDriverNotificationsCommand) setSentBy(sentBy kernel.UUID) error {
	if err := sentBy.Validate(); err != nil {
		return err
	}

	c.sentBy = sentBy
	return nil
}
