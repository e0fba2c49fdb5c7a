// Package graph exposes the room booking services as a GraphQL schema.
package graph

import (
	"context"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
)

func nonNull(t graphql.Input) *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.NewNonNull(t)}
}

func optional(t graphql.Input) *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: t}
}

// NewSchema builds the query and mutation roots around r.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	locationType := r.locationType()

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"allLocations": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(locationType))),
				Resolve: r.query("allLocations", r.resolveAllLocations),
			},
			"getRoomsInALocation": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(roomType))),
				Args:    graphql.FieldConfigArgument{"locationId": nonNull(graphql.Int)},
				Resolve: r.query("getRoomsInALocation", r.resolveRoomsInLocation),
			},
			"allRooms": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(roomType))),
				Resolve: r.query("allRooms", r.resolveAllRooms),
			},
			"getRoomById": &graphql.Field{
				Type:    roomType,
				Args:    graphql.FieldConfigArgument{"roomId": nonNull(graphql.Int)},
				Resolve: r.query("getRoomById", r.resolveRoomByID),
			},
			"allOffices": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(officeType))),
				Resolve: r.query("allOffices", r.resolveAllOffices),
			},
			"allBlocks": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(blockType))),
				Resolve: r.query("allBlocks", r.resolveAllBlocks),
			},
			"allDevices": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(deviceType))),
				Resolve: r.query("allDevices", r.resolveAllDevices),
			},
			"roomEvents": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(eventType))),
				Args:    graphql.FieldConfigArgument{"roomId": nonNull(graphql.Int)},
				Resolve: r.query("roomEvents", r.resolveRoomEvents),
			},
			"recurringEvents": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(eventType))),
				Args:    graphql.FieldConfigArgument{"recurringEventId": nonNull(graphql.String)},
				Resolve: r.query("recurringEvents", r.resolveRecurringEvents),
			},
		},
	})

	locationPayload := payload("LocationPayload", "location", locationType)
	roomPayload := payload("RoomPayload", "room", roomType)
	blockPayload := payload("BlockPayload", "block", blockType)
	devicePayload := payload("DevicePayload", "device", deviceType)

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createLocation": &graphql.Field{
				Type: locationPayload,
				Args: graphql.FieldConfigArgument{
					"name":         nonNull(graphql.String),
					"abbreviation": nonNull(graphql.String),
					"country":      nonNull(graphql.String),
					"timeZone":     nonNull(graphql.String),
					"imageUrl":     optional(graphql.String),
					"state":        optional(graphql.String),
				},
				Resolve: r.mutation("createLocation", r.createLocation),
			},
			"updateLocation": &graphql.Field{
				Type: locationPayload,
				Args: graphql.FieldConfigArgument{
					"locationId":   nonNull(graphql.Int),
					"name":         optional(graphql.String),
					"abbreviation": optional(graphql.String),
					"country":      optional(graphql.String),
					"timeZone":     optional(graphql.String),
					"imageUrl":     optional(graphql.String),
				},
				Resolve: r.mutation("updateLocation", r.updateLocation),
			},
			"deleteLocation": &graphql.Field{
				Type: locationPayload,
				Args: graphql.FieldConfigArgument{
					"locationId": nonNull(graphql.Int),
					"state":      optional(graphql.String),
				},
				Resolve: r.mutation("deleteLocation", r.deleteLocation),
			},
			"createRoom": &graphql.Field{
				Type: roomPayload,
				Args: graphql.FieldConfigArgument{
					"name":       nonNull(graphql.String),
					"roomType":   nonNull(graphql.String),
					"capacity":   nonNull(graphql.Int),
					"locationId": nonNull(graphql.Int),
					"floorId":    optional(graphql.Int),
					"calendarId": optional(graphql.String),
					"imageUrl":   optional(graphql.String),
				},
				Resolve: r.mutation("createRoom", r.createRoom),
			},
			"updateRoom": &graphql.Field{
				Type: roomPayload,
				Args: graphql.FieldConfigArgument{
					"roomId":        nonNull(graphql.Int),
					"name":          optional(graphql.String),
					"roomType":      optional(graphql.String),
					"capacity":      optional(graphql.Int),
					"floorId":       optional(graphql.Int),
					"calendarId":    optional(graphql.String),
					"imageUrl":      optional(graphql.String),
					"nextSyncToken": optional(graphql.String),
				},
				Resolve: r.mutation("updateRoom", r.updateRoom),
			},
			"deleteRoom": &graphql.Field{
				Type: roomPayload,
				Args: graphql.FieldConfigArgument{
					"roomId": nonNull(graphql.Int),
					"state":  optional(graphql.String),
				},
				Resolve: r.mutation("deleteRoom", r.deleteRoom),
			},
			"createOffice": &graphql.Field{
				Type: payload("OfficePayload", "office", officeType),
				Args: graphql.FieldConfigArgument{
					"name":       nonNull(graphql.String),
					"locationId": nonNull(graphql.Int),
				},
				Resolve: r.mutation("createOffice", r.createOffice),
			},
			"createBlock": &graphql.Field{
				Type: blockPayload,
				Args: graphql.FieldConfigArgument{
					"name":     nonNull(graphql.String),
					"officeId": nonNull(graphql.Int),
				},
				Resolve: r.mutation("createBlock", r.createBlock),
			},
			"deleteBlock": &graphql.Field{
				Type:    blockPayload,
				Args:    graphql.FieldConfigArgument{"blockId": nonNull(graphql.Int)},
				Resolve: r.mutation("deleteBlock", r.deleteBlock),
			},
			"createFloor": &graphql.Field{
				Type: payload("FloorPayload", "floor", floorType),
				Args: graphql.FieldConfigArgument{
					"name":    nonNull(graphql.String),
					"blockId": nonNull(graphql.Int),
				},
				Resolve: r.mutation("createFloor", r.createFloor),
			},
			"createDevice": &graphql.Field{
				Type: devicePayload,
				Args: graphql.FieldConfigArgument{
					"name":       nonNull(graphql.String),
					"deviceType": nonNull(graphql.String),
					"roomId":     nonNull(graphql.Int),
					"location":   nonNull(graphql.String),
					"lastSeen":   optional(graphql.DateTime),
				},
				Resolve: r.mutation("createDevice", r.createDevice),
			},
			"deleteDevice": &graphql.Field{
				Type: devicePayload,
				Args: graphql.FieldConfigArgument{
					"deviceId": nonNull(graphql.Int),
					"state":    optional(graphql.String),
				},
				Resolve: r.mutation("deleteDevice", r.deleteDevice),
			},
			"createEvent": &graphql.Field{
				Type: payload("EventPayload", "event", eventType),
				Args: graphql.FieldConfigArgument{
					"eventId":              nonNull(graphql.String),
					"roomId":               nonNull(graphql.Int),
					"eventTitle":           optional(graphql.String),
					"startTime":            nonNull(graphql.DateTime),
					"endTime":              nonNull(graphql.DateTime),
					"numberOfParticipants": nonNull(graphql.Int),
					"recurringEventId":     optional(graphql.String),
				},
				Resolve: r.mutation("createEvent", r.createEvent),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}

// Request is a decoded GraphQL over HTTP request.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

// Execute runs req against schema.
func Execute(ctx context.Context, schema graphql.Schema, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        ctx,
	})
}

// IsMutation reports whether req selects a mutation operation. Documents
// that fail to parse or select no operation report false and are left for
// Execute to reject.
func IsMutation(req Request) bool {
	doc, err := parser.Parse(parser.ParseParams{Source: req.Query})
	if err != nil {
		return false
	}

	var ops []*ast.OperationDefinition
	for _, def := range doc.Definitions {
		if op, ok := def.(*ast.OperationDefinition); ok {
			ops = append(ops, op)
		}
	}
	for _, op := range ops {
		if req.OperationName == "" && len(ops) == 1 ||
			op.Name != nil && op.Name.Value == req.OperationName {
			return op.Operation == ast.OperationTypeMutation
		}
	}
	return false
}
