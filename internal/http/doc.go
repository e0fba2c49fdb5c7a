// Package http serves the room booking GraphQL API over gin.
//
// The router exposes the following endpoints:
//   - POST /graphql, GET /graphql: GraphQL endpoint. The POST body is
//     {"query","operationName","variables"}; GET takes the same fields as
//     query parameters with variables JSON encoded. Responses always follow
//     the GraphQL result shape {"data","errors"}.
//   - GET /playground: interactive GraphQL playground, when enabled.
//   - GET /healthz: reports database reachability as {"status"}.
//   - GET /metrics: Prometheus metrics, when a metrics handler is configured.
//
// Requests may carry an "Authorization: Bearer <jwt>" header. A valid token
// attaches the caller to the request context; an invalid one is rejected with
// 401 before the request reaches GraphQL. Anonymous requests may run queries
// while every mutation requires the Admin role.
package http
