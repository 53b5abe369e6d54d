// Package models содержит сигнальные ошибки доменного уровня.
// Сервисы возвращают их вместо "сырых" ошибок хранилища,
// а HTTP-обработчики транслируют в коды ответов.
package models

import "errors"

var (
	// ErrUserExists — пользователь с таким username или email уже зарегистрирован.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials — неверная пара email/пароль.
	// Текст не различает неизвестный email и неверный пароль.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrBookNotFound — книга не найдена.
	ErrBookNotFound = errors.New("book not found")
	// ErrCartLineNotFound — позиция корзины не найдена или принадлежит другому пользователю.
	ErrCartLineNotFound = errors.New("cart item not found")
	// ErrInsufficientStock — запрошенное количество превышает остаток на складе.
	ErrInsufficientStock = errors.New("insufficient stock for requested quantity")
)
