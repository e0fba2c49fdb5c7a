package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/example/roombooking/internal/application"
)

func stringValue(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func int64Value(i *int64) interface{} {
	if i == nil {
		return nil
	}
	return *i
}

var stateEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "StateType",
	Values: graphql.EnumValueConfigMap{
		"active":   &graphql.EnumValueConfig{Value: "active"},
		"archived": &graphql.EnumValueConfig{Value: "archived"},
		"deleted":  &graphql.EnumValueConfig{Value: "deleted"},
	},
})

func sourceField[T any](fn func(T) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		switch src := p.Source.(type) {
		case T:
			return fn(src), nil
		case *T:
			if src != nil {
				return fn(*src), nil
			}
		}
		return nil, nil
	}
}

var roomType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Room",
	Fields: graphql.Fields{
		"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"roomType":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"capacity":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"locationId": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"floorId": &graphql.Field{Type: graphql.Int, Resolve: sourceField(func(r application.Room) interface{} {
			return int64Value(r.FloorID)
		})},
		"calendarId": &graphql.Field{Type: graphql.String, Resolve: sourceField(func(r application.Room) interface{} {
			return stringValue(r.CalendarID)
		})},
		"imageUrl": &graphql.Field{Type: graphql.String, Resolve: sourceField(func(r application.Room) interface{} {
			return stringValue(r.ImageURL)
		})},
		"nextSyncToken": &graphql.Field{Type: graphql.String, Resolve: sourceField(func(r application.Room) interface{} {
			return stringValue(r.NextSyncToken)
		})},
		"state": &graphql.Field{Type: graphql.NewNonNull(stateEnum), Resolve: sourceField(func(r application.Room) interface{} {
			return string(r.State)
		})},
	},
})

// locationType is built by the resolver because its rooms field needs the
// location service.
func (r *Resolver) locationType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Location",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"name":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"abbreviation": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"country":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"imageUrl": &graphql.Field{Type: graphql.String, Resolve: sourceField(func(l application.Location) interface{} {
				return stringValue(l.ImageURL)
			})},
			"timeZone": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"state": &graphql.Field{Type: graphql.NewNonNull(stateEnum), Resolve: sourceField(func(l application.Location) interface{} {
				return string(l.State)
			})},
			"rooms": &graphql.Field{
				Type:    graphql.NewList(graphql.NewNonNull(roomType)),
				Resolve: r.query("Location.rooms", r.resolveLocationRooms),
			},
		},
	})
}

var officeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Office",
	Fields: graphql.Fields{
		"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"locationId": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"state": &graphql.Field{Type: graphql.NewNonNull(stateEnum), Resolve: sourceField(func(o application.Office) interface{} {
			return string(o.State)
		})},
	},
})

var floorType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Floor",
	Fields: graphql.Fields{
		"id":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"blockId": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"state": &graphql.Field{Type: graphql.NewNonNull(stateEnum), Resolve: sourceField(func(f application.Floor) interface{} {
			return string(f.State)
		})},
	},
})

var blockType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Block",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"officeId": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"state": &graphql.Field{Type: graphql.NewNonNull(stateEnum), Resolve: sourceField(func(b application.Block) interface{} {
			return string(b.State)
		})},
		"floors": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(floorType))),
			Resolve: sourceField(func(b application.Block) interface{} {
				if b.Floors == nil {
					return []application.Floor{}
				}
				return b.Floors
			}),
		},
	},
})

var deviceType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Device",
	Fields: graphql.Fields{
		"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"deviceType": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"roomId":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"location":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"lastSeen": &graphql.Field{Type: graphql.DateTime, Resolve: sourceField(func(d application.Device) interface{} {
			if d.LastSeen == nil {
				return nil
			}
			return *d.LastSeen
		})},
		"state": &graphql.Field{Type: stateEnum, Resolve: sourceField(func(d application.Device) interface{} {
			if d.State == nil {
				return nil
			}
			return string(*d.State)
		})},
	},
})

var eventType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Event",
	Fields: graphql.Fields{
		"id":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"eventId": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"roomId":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"eventTitle": &graphql.Field{Type: graphql.String, Resolve: sourceField(func(e application.Event) interface{} {
			return stringValue(e.Title)
		})},
		"startTime":            &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"endTime":              &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"numberOfParticipants": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"recurringEventId": &graphql.Field{Type: graphql.String, Resolve: sourceField(func(e application.Event) interface{} {
			return stringValue(e.RecurringEventID)
		})},
		"state": &graphql.Field{Type: graphql.NewNonNull(stateEnum), Resolve: sourceField(func(e application.Event) interface{} {
			return string(e.State)
		})},
	},
})

func payload(name, field string, typ graphql.Output) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			field: &graphql.Field{Type: typ},
		},
	})
}
