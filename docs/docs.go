// Package docs registra el documento swagger de la API.
// Se mantiene a mano con el formato de swag; al cambiar un handler hay que
// actualizar paths y definitions acá.
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
        "/api/auth/login": {
            "post": {
                "description": "Verifica credenciales y emite un bearer token. Email inexistente y password incorrecto devuelven el mismo 401.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Iniciar sesión",
                "parameters": [
                    {
                        "description": "Credenciales",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/users.loginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.authResponse"}},
                    "400": {"description": "invalid json", "schema": {"$ref": "#/definitions/httpjson.ErrorResponse"}},
                    "401": {"description": "invalid credentials", "schema": {"$ref": "#/definitions/httpjson.ErrorResponse"}}
                }
            }
        },
        "/api/auth/me": {
            "get": {
                "description": "Devuelve el usuario dueño del bearer token.",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Usuario actual",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.meResponse"}},
                    "401": {"description": "no token provided / invalid or expired token", "schema": {"$ref": "#/definitions/httpjson.ErrorResponse"}},
                    "404": {"description": "user not found", "schema": {"$ref": "#/definitions/httpjson.ErrorResponse"}}
                }
            }
        },
        "/api/auth/register": {
            "post": {
                "description": "Crea una cuenta y devuelve el usuario (sin password) junto con un bearer token. Todos los campos inválidos se informan juntos en ` + "`" + `errors` + "`" + `.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Registrar usuario",
                "parameters": [
                    {
                        "description": "Datos de registro",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/users.registerRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/users.authResponse"}},
                    "400": {"description": "invalid json / validation failed", "schema": {"$ref": "#/definitions/httpjson.ErrorResponse"}},
                    "409": {"description": "email already registered", "schema": {"$ref": "#/definitions/httpjson.ErrorResponse"}}
                }
            }
        },
        "/api/pets": {
            "get": {
                "description": "Lista todas las mascotas, cada una con nombre y email de su dueño (` + "`" + `owner` + "`" + ` es null si el dueño no existe).",
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Catálogo de mascotas",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.listingsEnvelope"}}
                }
            },
            "post": {
                "description": "Registra una mascota a nombre del usuario del token. Todos los campos inválidos se informan juntos en ` + "`" + `errors` + "`" + `. description, price y forSale son opcionales (default \"\", 0, false).",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Publicar mascota",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header", "required": true},
                    {
                        "description": "Datos de la mascota",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/pets.createPetRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.petEnvelope"}},
                    "400": {"description": "invalid json / validation failed", "schema": {"$ref": "#/definitions/httpjson.ErrorResponse"}},
                    "401": {"description": "no token provided / invalid or expired token", "schema": {"$ref": "#/definitions/httpjson.ErrorResponse"}}
                }
            }
        },
        "/api/pets/user": {
            "get": {
                "description": "Lista solo las mascotas cuyo dueño es el usuario del token.",
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Mis mascotas",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petsEnvelope"}},
                    "401": {"description": "no token provided / invalid or expired token", "schema": {"$ref": "#/definitions/httpjson.ErrorResponse"}}
                }
            }
        },
        "/api/pets/{petID}": {
            "get": {
                "description": "Devuelve una mascota con la proyección de su dueño.",
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Ver mascota",
                "parameters": [
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.listingEnvelope"}},
                    "404": {"description": "pet not found", "schema": {"$ref": "#/definitions/httpjson.ErrorResponse"}}
                }
            },
            "patch": {
                "description": "Actualiza los campos enviados. Solo el dueño puede editar; updatedAt se renueva siempre.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Editar mascota",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header", "required": true},
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true},
                    {
                        "description": "Campos a modificar",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/pets.updatePetRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petEnvelope"}},
                    "400": {"description": "invalid json / validation failed", "schema": {"$ref": "#/definitions/httpjson.ErrorResponse"}},
                    "401": {"description": "no token provided / invalid or expired token", "schema": {"$ref": "#/definitions/httpjson.ErrorResponse"}},
                    "403": {"description": "only the owner can edit this pet", "schema": {"$ref": "#/definitions/httpjson.ErrorResponse"}},
                    "404": {"description": "pet not found", "schema": {"$ref": "#/definitions/httpjson.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "apperr.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "httpjson.ErrorResponse": {
            "type": "object",
            "properties": {
                "errors": {"type": "array", "items": {"$ref": "#/definitions/apperr.FieldError"}},
                "message": {"type": "string"},
                "success": {"type": "boolean", "example": false}
            }
        },
        "pets.Gender": {
            "type": "string",
            "enum": ["male", "female"],
            "x-enum-varnames": ["GenderMale", "GenderFemale"]
        },
        "pets.Type": {
            "type": "string",
            "enum": ["dog", "cat", "bird", "rabbit", "other"],
            "x-enum-varnames": ["TypeDog", "TypeCat", "TypeBird", "TypeRabbit", "TypeOther"]
        },
        "pets.createPetRequest": {
            "type": "object",
            "properties": {
                "age": {"type": "string", "example": "2"},
                "breed": {"type": "string", "example": "Labrador"},
                "description": {"type": "string"},
                "forSale": {"type": "boolean", "example": false},
                "gender": {"type": "string", "enum": ["male", "female"], "example": "male"},
                "name": {"type": "string", "example": "Rex"},
                "price": {"type": "number", "example": 0},
                "type": {"type": "string", "enum": ["dog", "cat", "bird", "rabbit", "other"], "example": "dog"}
            }
        },
        "pets.updatePetRequest": {
            "type": "object",
            "properties": {
                "age": {"type": "string"},
                "breed": {"type": "string"},
                "description": {"type": "string"},
                "forSale": {"type": "boolean"},
                "gender": {"type": "string", "enum": ["male", "female"]},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "type": {"type": "string", "enum": ["dog", "cat", "bird", "rabbit", "other"]}
            }
        },
        "pets.petResponse": {
            "type": "object",
            "properties": {
                "age": {"type": "string"},
                "breed": {"type": "string"},
                "createdAt": {"type": "string"},
                "description": {"type": "string"},
                "forSale": {"type": "boolean"},
                "gender": {"$ref": "#/definitions/pets.Gender"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "ownerId": {"type": "string"},
                "price": {"type": "number"},
                "type": {"$ref": "#/definitions/pets.Type"},
                "updatedAt": {"type": "string"}
            }
        },
        "pets.listingResponse": {
            "type": "object",
            "properties": {
                "age": {"type": "string"},
                "breed": {"type": "string"},
                "createdAt": {"type": "string"},
                "description": {"type": "string"},
                "forSale": {"type": "boolean"},
                "gender": {"$ref": "#/definitions/pets.Gender"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "owner": {"$ref": "#/definitions/users.Owner"},
                "ownerId": {"type": "string"},
                "price": {"type": "number"},
                "type": {"$ref": "#/definitions/pets.Type"},
                "updatedAt": {"type": "string"}
            }
        },
        "pets.petEnvelope": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "pet": {"$ref": "#/definitions/pets.petResponse"},
                "success": {"type": "boolean", "example": true}
            }
        },
        "pets.listingEnvelope": {
            "type": "object",
            "properties": {
                "pet": {"$ref": "#/definitions/pets.listingResponse"},
                "success": {"type": "boolean", "example": true}
            }
        },
        "pets.petsEnvelope": {
            "type": "object",
            "properties": {
                "pets": {"type": "array", "items": {"$ref": "#/definitions/pets.petResponse"}},
                "success": {"type": "boolean", "example": true}
            }
        },
        "pets.listingsEnvelope": {
            "type": "object",
            "properties": {
                "pets": {"type": "array", "items": {"$ref": "#/definitions/pets.listingResponse"}},
                "success": {"type": "boolean", "example": true}
            }
        },
        "users.Owner": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "users.PublicUser": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "createdAt": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "userType": {"type": "string", "enum": ["adopter", "seller", "both"]}
            }
        },
        "users.authResponse": {
            "type": "object",
            "properties": {
                "expiresAt": {"type": "string"},
                "message": {"type": "string"},
                "success": {"type": "boolean", "example": true},
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/users.PublicUser"}
            }
        },
        "users.loginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "ana@example.com"},
                "password": {"type": "string", "example": "secret123"}
            }
        },
        "users.meResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "user": {"$ref": "#/definitions/users.PublicUser"}
            }
        },
        "users.registerRequest": {
            "type": "object",
            "properties": {
                "address": {"type": "string", "example": "Av. Siempre Viva 742"},
                "email": {"type": "string", "example": "ana@example.com"},
                "name": {"type": "string", "example": "Ana"},
                "password": {"type": "string", "example": "secret123"},
                "phone": {"type": "string", "example": "+54 11 5555 5555"},
                "userType": {"type": "string", "enum": ["adopter", "seller", "both"], "example": "adopter"}
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
	Title:            "Pet Marketplace API",
	Description:      "Marketplace de adopción y venta de mascotas: cuentas con bearer token, publicación y catálogo de mascotas.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
