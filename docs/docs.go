// Package docs holds the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "HTML страница: кнопки фильтра, карта Leaflet и список объектов",
                "produces": ["text/html"],
                "tags": ["Map"],
                "summary": "Map page",
                "parameters": [
                    {
                        "type": "string",
                        "description": "All, Healthcare, Education, Transportation, Utilities, PublicServices",
                        "name": "filter",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "HTML", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/categories": {
            "get": {
                "description": "Категории в порядке отображения: цвет слоя, класс кнопки, количество объектов",
                "produces": ["application/json"],
                "tags": ["Features"],
                "summary": "List categories",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.SuccessResponse"},
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {"type": "array", "items": {"$ref": "#/definitions/dto.CategoryInfo"}}
                                    }
                                }
                            ]
                        }
                    },
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/layers": {
            "get": {
                "description": "Слои для активного фильтра, по одному на категорию, с маркерами",
                "produces": ["application/json"],
                "tags": ["Features"],
                "summary": "Visible layers",
                "parameters": [
                    {"type": "string", "description": "Active filter, defaults to All", "name": "filter", "in": "query"},
                    {"type": "string", "description": "minLon,minLat,maxLon,maxLat", "name": "bbox", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.SuccessResponse"},
                                {
                                    "type": "object",
                                    "properties": {"data": {"$ref": "#/definitions/dto.LayersResponse"}}
                                }
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/features": {
            "get": {
                "description": "GeoJSON FeatureCollection видимых объектов",
                "produces": ["application/geo+json"],
                "tags": ["Features"],
                "summary": "Features as GeoJSON",
                "parameters": [
                    {"type": "string", "description": "Active filter, defaults to All", "name": "filter", "in": "query"},
                    {"type": "string", "description": "minLon,minLat,maxLon,maxLat", "name": "bbox", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "FeatureCollection", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/features/{id}": {
            "get": {
                "description": "Один объект по идентификатору",
                "produces": ["application/json"],
                "tags": ["Features"],
                "summary": "Feature by ID",
                "parameters": [
                    {"type": "string", "description": "Feature UUID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.SuccessResponse"},
                                {
                                    "type": "object",
                                    "properties": {"data": {"$ref": "#/definitions/dto.FeatureResponse"}}
                                }
                            ]
                        }
                    },
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/stats": {
            "get": {
                "description": "Количество объектов по категориям, покрытие и источник данных",
                "produces": ["application/json"],
                "tags": ["Statistics"],
                "summary": "Dataset statistics",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.SuccessResponse"},
                                {
                                    "type": "object",
                                    "properties": {"data": {"$ref": "#/definitions/domain.Statistics"}}
                                }
                            ]
                        }
                    },
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.BoundingBox": {
            "type": "object",
            "properties": {
                "min_lon": {"type": "number"},
                "min_lat": {"type": "number"},
                "max_lon": {"type": "number"},
                "max_lat": {"type": "number"}
            }
        },
        "domain.CoverageStats": {
            "type": "object",
            "properties": {
                "bbox_min_lat": {"type": "number"},
                "bbox_max_lat": {"type": "number"},
                "bbox_min_lon": {"type": "number"},
                "bbox_max_lon": {"type": "number"},
                "center_lat": {"type": "number"},
                "center_lon": {"type": "number"}
            }
        },
        "domain.Statistics": {
            "type": "object",
            "properties": {
                "total_features": {"type": "integer"},
                "by_category": {"type": "object", "additionalProperties": {"type": "integer"}},
                "coverage": {"$ref": "#/definitions/domain.CoverageStats"},
                "data_source": {"type": "string"},
                "loaded_at": {"type": "string"}
            }
        },
        "dto.CategoryInfo": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "slug": {"type": "string"},
                "label": {"type": "string"},
                "color": {"type": "string"},
                "button_class": {"type": "string"},
                "count": {"type": "integer"}
            }
        },
        "dto.FeatureResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string"},
                "label": {"type": "string"},
                "color": {"type": "string"},
                "lat": {"type": "number"},
                "lon": {"type": "number"}
            }
        },
        "dto.Layer": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "label": {"type": "string"},
                "color": {"type": "string"},
                "checked": {"type": "boolean"},
                "markers": {"type": "array", "items": {"$ref": "#/definitions/dto.Marker"}}
            }
        },
        "dto.LayersResponse": {
            "type": "object",
            "properties": {
                "filter": {"type": "string"},
                "bbox": {"$ref": "#/definitions/domain.BoundingBox"},
                "layers": {"type": "array", "items": {"$ref": "#/definitions/dto.Layer"}},
                "total": {"type": "integer"}
            }
        },
        "dto.Marker": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "lat": {"type": "number"},
                "lon": {"type": "number"}
            }
        },
        "errors.AppError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/errors.AppError"}
            }
        },
        "utils.Meta": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "filter": {"type": "string"},
                "time_ms": {"type": "number"}
            }
        },
        "utils.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {"$ref": "#/definitions/utils.Meta"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Infrastructure Map API",
	Description:      "Infrastructure points of interest for Jigawa State grouped into category layers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
