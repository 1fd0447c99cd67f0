// Package binding turns a route definition, an input decoder and a strongly
// typed handler into a gin.HandlerFunc. Decoders run the schema validation, so
// a handler only ever sees valid input.
package binding

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-api/internal/route"
	"user-api/internal/schema"
	apperrors "user-api/pkg/errors"
	"user-api/pkg/logger"
)

const internalErrorMessage = "internal server error"

// Decoder extracts and validates the input of one request.
type Decoder[In any] func(c *gin.Context) (In, error)

// Handler performs an operation on validated input.
type Handler[In, Out any] func(ctx context.Context, in In) (Out, error)

// Bind wires decode and handle into a gin handler answering with
// def.SuccessStatus on success and an ErrorOutput otherwise.
func Bind[In, Out any](def route.Definition, decode Decoder[In], handle Handler[In, Out], log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		in, err := decode(c)
		if err != nil {
			logger.WithContext(ctx, log).Debug("request rejected by validation",
				zap.String("operation", def.OperationID),
				zap.Error(err),
			)
			WriteError(c, err, log)
			return
		}

		out, err := handle(ctx, in)
		if err != nil {
			WriteError(c, err, log)
			return
		}

		c.JSON(def.SuccessStatus, out)
	}
}

// WriteError renders err as an ErrorOutput. Errors without an HTTP status are
// logged and reported as a generic 500.
func WriteError(c *gin.Context, err error, log *zap.Logger) {
	var statuser apperrors.HTTPStatuser
	if !errors.As(err, &statuser) {
		logger.WithContext(c.Request.Context(), log).Error("unexpected error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, schema.ErrorOutput{Error: internalErrorMessage})
		return
	}

	status := statuser.HTTPStatus()
	msg := err.Error()
	var internal *apperrors.InternalError
	if errors.As(err, &internal) {
		logger.WithContext(c.Request.Context(), log).Error("internal error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		msg = internal.PublicMessage()
	}
	c.AbortWithStatusJSON(status, schema.ErrorOutput{Error: msg})
}

// NoInput is the decoder for operations without parameters or body.
func NoInput(*gin.Context) (struct{}, error) {
	return struct{}{}, nil
}

// PathID decodes the {id} path parameter.
func PathID(c *gin.Context) (schema.Identifier, error) {
	return schema.ParseIdentifier(c.Param("id"))
}

// Body decodes and validates the JSON request body as T.
func Body[T schema.Validator](c *gin.Context) (T, error) {
	return schema.DecodeBody[T](c.Request.Body)
}

// PathIDAndUpdate decodes the {id} parameter and the update body together.
func PathIDAndUpdate(c *gin.Context) (schema.UpdateUserParams, error) {
	id, err := PathID(c)
	if err != nil {
		return schema.UpdateUserParams{}, err
	}
	in, err := Body[schema.UpdateUserInput](c)
	if err != nil {
		return schema.UpdateUserParams{}, err
	}
	return schema.UpdateUserParams{Identifier: id, Input: in}, nil
}
