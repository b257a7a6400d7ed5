package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"messenger/model"
	"messenger/policy"
	"messenger/repository"
	"messenger/transformer"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MessageController serves the messages resource.
type MessageController struct {
	messages repository.MessageRepository
	users    repository.Repository[model.User]
	logger   *logrus.Logger
}

func NewMessageController(messages repository.MessageRepository, users repository.Repository[model.User], logger *logrus.Logger) *MessageController {
	return &MessageController{messages: messages, users: users, logger: logger}
}

type storeMessageRequest struct {
	UserID  uint   `json:"userId" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type updateMessageRequest struct {
	Subject *string `json:"subject"`
	Message *string `json:"message"`
}

func (r updateMessageRequest) fields() map[string]any {
	fields := make(map[string]any, 2)
	if r.Subject != nil {
		fields["subject"] = *r.Subject
	}
	if r.Message != nil {
		fields["message"] = *r.Message
	}
	return fields
}

// Index lists messages. Every query parameter is passed on as a filter.
func (ctrl *MessageController) Index(c *gin.Context) {
	filters := make(map[string]string)
	for name, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			filters[name] = values[0]
		}
	}

	messages, err := ctrl.messages.FindBy(c.Request.Context(), filters)
	if err != nil {
		ctrl.logger.Errorf("[%s] Failed to list messages: %s", c.GetString("requestId"), err)
		sendCustomResponse(c, http.StatusInternalServerError, "Error occurred on listing Messages")
		return
	}

	c.JSON(http.StatusOK, transformer.Collection(transformer.TransformMessages(messages)))
}

func (ctrl *MessageController) Show(c *gin.Context) {
	message, ok := ctrl.findMessage(c)
	if !ok {
		return
	}
	if !ctrl.authorize(c, policy.ActionShow, message) {
		return
	}

	respondWithItem(c, http.StatusOK, transformer.TransformMessage(*message))
}

func (ctrl *MessageController) Store(c *gin.Context) {
	var req storeMessageRequest
	if !ctrl.bind(c, &req) {
		return
	}

	errs := validateRequest(req)
	if _, failed := errs["userId"]; !failed {
		exists, err := ctrl.users.Exists(c.Request.Context(), req.UserID)
		if err != nil {
			ctrl.logger.Errorf("[%s] Failed to look up user %d: %s", c.GetString("requestId"), req.UserID, err)
			sendCustomResponse(c, http.StatusInternalServerError, "Error occurred on creating Message")
			return
		}
		if !exists {
			errs.Add("userId", "The selected userId is invalid.")
		}
	}
	if len(errs) > 0 {
		ctrl.logger.Warnf("[%s] Invalid message input: %v", c.GetString("requestId"), errs)
		sendInvalidFieldResponse(c, errs)
		return
	}

	message, err := ctrl.messages.Save(c.Request.Context(), &model.Message{
		UserId:  req.UserID,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil || message == nil {
		ctrl.logger.Errorf("[%s] Failed to create message: %v", c.GetString("requestId"), err)
		sendCustomResponse(c, http.StatusInternalServerError, "Error occurred on creating Message")
		return
	}

	ctrl.logger.Infof("[%s] User %d created message %s for user %d",
		c.GetString("requestId"), currentUser(c).ID, message.UID, message.UserId)
	respondWithItem(c, http.StatusCreated, transformer.TransformMessage(*message))
}

func (ctrl *MessageController) Update(c *gin.Context) {
	var req updateMessageRequest
	if !ctrl.bind(c, &req) {
		return
	}
	if errs := validateRequest(req); len(errs) > 0 {
		sendInvalidFieldResponse(c, errs)
		return
	}

	message, ok := ctrl.findMessage(c)
	if !ok {
		return
	}
	if !ctrl.authorize(c, policy.ActionUpdate, message) {
		return
	}

	message, err := ctrl.messages.Update(c.Request.Context(), message, req.fields())
	if err != nil {
		ctrl.logger.Errorf("[%s] Failed to update message %s: %s", c.GetString("requestId"), c.Param("id"), err)
		sendCustomResponse(c, http.StatusInternalServerError, "Error occurred on updating Message")
		return
	}

	respondWithItem(c, http.StatusOK, transformer.TransformMessage(*message))
}

func (ctrl *MessageController) Destroy(c *gin.Context) {
	message, ok := ctrl.findMessage(c)
	if !ok {
		return
	}
	if !ctrl.authorize(c, policy.ActionDestroy, message) {
		return
	}

	if err := ctrl.messages.Delete(c.Request.Context(), message); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			sendNotFoundResponse(c, notFoundMessage(message.UID))
			return
		}
		ctrl.logger.Errorf("[%s] Failed to delete message %s: %s", c.GetString("requestId"), message.UID, err)
		sendCustomResponse(c, http.StatusInternalServerError, "Error occurred on deleting Message")
		return
	}

	c.Status(http.StatusNoContent)
}

// bind decodes the JSON body into req; an empty body leaves req zero. It writes the
// error response and returns false when the body cannot be used.
func (ctrl *MessageController) bind(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	ctrl.logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
	if errs := bindingErrors(err); errs != nil {
		sendInvalidFieldResponse(c, errs)
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
	return false
}

func (ctrl *MessageController) findMessage(c *gin.Context) (*model.Message, bool) {
	id := c.Param("id")
	message, err := ctrl.messages.FindOne(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		sendNotFoundResponse(c, notFoundMessage(id))
		return nil, false
	}
	if err != nil {
		ctrl.logger.Errorf("[%s] Failed to find message %s: %s", c.GetString("requestId"), id, err)
		sendCustomResponse(c, http.StatusInternalServerError, "Error occurred on finding Message")
		return nil, false
	}
	return message, true
}

func (ctrl *MessageController) authorize(c *gin.Context, action policy.Action, message *model.Message) bool {
	user := currentUser(c)
	if policy.Authorize(action, user, message) {
		return true
	}
	ctrl.logger.Warnf("[%s] User %d may not %s message %s", c.GetString("requestId"), user.ID, action, message.UID)
	sendForbiddenResponse(c)
	return false
}

func notFoundMessage(id string) string {
	return fmt.Sprintf("The message with id %s doesn't exist", id)
}
