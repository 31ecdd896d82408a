// Package docs содержит описание API для Swagger UI. Сгенерировано по
// аннотациям обработчиков, при изменении маршрутов обновляется через swag init.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Регистрация пользователя",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/signup.Request"}}
                ],
                "responses": {
                    "201": {"description": "Пользователь создан", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Пользователь уже существует", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "422": {"description": "Ошибка валидации", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Вход пользователя",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/login.Request"}}
                ],
                "responses": {
                    "200": {"description": "Успешный вход", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Неверные учетные данные", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "429": {"description": "Слишком много запросов", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/logout": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Выход пользователя",
                "responses": {
                    "200": {"description": "Выход выполнен", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/users/{username}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "Профиль пользователя",
                "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Профиль", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Пользователь не найден", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "Обновление профиля",
                "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Обновленный профиль", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Имя пользователя занято", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/users/{username}/password": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "Смена пароля",
                "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Пароль изменен", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Неверный текущий пароль", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/users/{username}/password/reset": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "Сброс пароля",
                "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Пароль сброшен", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/members/{username}/payments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Payments"],
                "summary": "История платежей",
                "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Список платежей", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Payments"],
                "summary": "Проведение платежа",
                "parameters": [
                    {"type": "string", "name": "username", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/paymentcreate.Request"}}
                ],
                "responses": {
                    "201": {"description": "Сохраненный платеж", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Некорректные данные платежа", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/members/{username}/payments/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Payments"],
                "summary": "Сводка по платежам",
                "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Сводка", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/members/{username}/membership": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Members"],
                "summary": "Продление абонемента",
                "parameters": [
                    {"type": "string", "name": "username", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/membershiprenew.Request"}}
                ],
                "responses": {
                    "200": {"description": "Обновленный пользователь", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Некорректный срок или пользователь не участник", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Участник не найден", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/members/{username}/membership/cancel": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Members"],
                "summary": "Отмена абонемента",
                "parameters": [
                    {"type": "string", "name": "username", "in": "path", "required": true},
                    {"name": "request", "in": "body", "schema": {"$ref": "#/definitions/membershipcancel.Request"}}
                ],
                "responses": {
                    "200": {"description": "Обновленный пользователь", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Участник не найден", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/members/{username}/attendance": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Members"],
                "summary": "Число посещений",
                "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Число посещений", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Участник не найден", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "post": {
                "produces": ["application/json"],
                "tags": ["Members"],
                "summary": "Отметка посещения",
                "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Новое число посещений", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Участник не найден", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/payments/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Payments"],
                "summary": "Платеж по идентификатору",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Платеж", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Платеж не найден", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "membershipcancel.Request": {
            "type": "object",
            "properties": {
                "reason": {"type": "string"}
            }
        },
        "membershiprenew.Request": {
            "type": "object",
            "required": ["membership_type"],
            "properties": {
                "membership_end": {"type": "string"},
                "membership_start": {"type": "string"},
                "membership_type": {"type": "string"}
            }
        },
        "login.Request": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string"},
                "role": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "signup.Request": {
            "type": "object",
            "required": ["password", "role", "username"],
            "properties": {
                "password": {"type": "string"},
                "role": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "paymentcreate.Request": {
            "type": "object",
            "required": ["method"],
            "properties": {
                "amount": {"type": "number"},
                "currency": {"type": "string"},
                "invoice_id": {"type": "string"},
                "method": {"type": "string"},
                "provider": {"type": "string"},
                "reference_number": {"type": "string"}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid request body"},
                "status": {"type": "string", "example": "Error"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"type": "string"},
                "status": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Gym Management API",
	Description:      "API учетных записей и платежей фитнес-клуба",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
