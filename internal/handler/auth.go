package handler

import "github.com/gin-gonic/gin"

// Authorizer builds the middleware guarding a route group for the given roles
type Authorizer func(allowedRoles ...string) gin.HandlerFunc
