// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the
// backend handlers and by the client when it interprets backend replies.
//
// All Msg* constants are human-readable message strings written into HTTP
// response bodies. Keeping them in one place lets the client map a body back
// to a domain error without guessing.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoUserIDProvided is returned when a handler requires the caller's
	// user id but none is present in the request context.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgCategoryNameTaken is returned when a category with the same name,
	// compared case-insensitively, already exists for the caller.
	MsgCategoryNameTaken = "category name already exists"

	MsgCategoryNotFound = "category not found"
	MsgItemNotFound     = "item not found"

	// MsgProfileNotFound is returned when a write needs the caller's profile
	// row and it has not been created yet.
	MsgProfileNotFound = "profile not found"

	// MsgConstraintViolation is returned when the database rejected a value
	// (negative priority, unknown item type, over-long text).
	MsgConstraintViolation = "constraint violation"

	// MsgNoItemsProvided is returned when a bulk request carries no items.
	MsgNoItemsProvided = "no items provided"

	// MsgNoIDsProvided is returned when a bulk delete carries no ids.
	MsgNoIDsProvided = "no ids provided"

	MsgNothingToUpdate = "nothing to update"
)
