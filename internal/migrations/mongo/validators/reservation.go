package validators

import "go.mongodb.org/mongo-driver/bson"

func objectIDString() bson.M {
	return bson.M{
		"bsonType":  "string",
		"minLength": 24,
		"maxLength": 24,
		"pattern":   "^[0-9a-f]{24}$",
	}
}

func ReservationValidator() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{
				"user_id",
				"room_id",
				"hotel_id",
				"date_start",
				"date_end",
				"created_at",
			},
			"additionalProperties": true,

			"properties": bson.M{
				"_id": bson.M{
					"bsonType": "objectId",
				},

				"user_id": bson.M{
					"bsonType":  "string",
					"minLength": 1,
				},

				"room_id":  objectIDString(),
				"hotel_id": objectIDString(),

				"date_start": bson.M{
					"bsonType": "date",
				},

				"date_end": bson.M{
					"bsonType": "date",
				},

				"created_at": bson.M{
					"bsonType": "date",
				},
			},
		},
		// date_start <= date_end cannot be expressed in $jsonSchema.
		"$expr": bson.M{
			"$lte": bson.A{"$date_start", "$date_end"},
		},
	}
}

func ReservationLockValidator() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":             "object",
			"required":             []string{"_id", "room_id", "owner", "expires_at", "created_at"},
			"additionalProperties": true,
			"properties": bson.M{
				"_id":        bson.M{"bsonType": "string", "pattern": "^reservation_lock_"},
				"room_id":    bson.M{"bsonType": "string"},
				"owner":      bson.M{"bsonType": "string", "minLength": 1},
				"expires_at": bson.M{"bsonType": "date"},
				"fenced_at":  bson.M{"bsonType": "date"},
				"created_at": bson.M{"bsonType": "date"},
			},
		},
	}
}
