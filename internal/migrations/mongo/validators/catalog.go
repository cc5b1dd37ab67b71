package validators

import "go.mongodb.org/mongo-driver/bson"

func HotelValidator() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":             "object",
			"required":             []string{"title", "created_at"},
			"additionalProperties": true,
			"properties": bson.M{
				"_id":         bson.M{"bsonType": "objectId"},
				"title":       bson.M{"bsonType": "string", "minLength": 1},
				"description": bson.M{"bsonType": "string"},
				"created_at":  bson.M{"bsonType": "date"},
				"updated_at":  bson.M{"bsonType": "date"},
			},
		},
	}
}

func RoomValidator() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":             "object",
			"required":             []string{"hotel_id", "is_enabled", "created_at"},
			"additionalProperties": true,
			"properties": bson.M{
				"_id":         bson.M{"bsonType": "objectId"},
				"hotel_id":    objectIDString(),
				"description": bson.M{"bsonType": "string"},
				"images": bson.M{
					"bsonType": []string{"array", "null"},
					"items":    bson.M{"bsonType": "string"},
				},
				"is_enabled": bson.M{"bsonType": "bool"},
				"created_at": bson.M{"bsonType": "date"},
				"updated_at": bson.M{"bsonType": "date"},
			},
		},
	}
}
