package arcanum

import (
	"fmt"

	"github.com/arcanum-sdk/client-go/internal/wire"
)

// The decoders below turn parsed JSON into the domain model. Each fails with
// a *wire.DecodeError naming the offending key when a required key is absent
// or mistyped. Defaults: a missing description is "", missing apiKey or
// apiSecret is nil, a missing encryptedSecret is "" and a missing project
// secrets list is empty.

func decodeUser(o wire.Object) (User, error) {
	var u User
	var err error
	if u.ID, err = o.Int("id"); err != nil {
		return User{}, err
	}
	if u.NetID, err = o.String("netId"); err != nil {
		return User{}, err
	}
	if u.Name, err = o.String("name"); err != nil {
		return User{}, err
	}
	if u.Authorities, err = o.Strings("authorities"); err != nil {
		return User{}, err
	}
	return u, nil
}

func decodeVault(o wire.Object) (Vault, error) {
	var v Vault
	var err error
	if v.ID, err = o.Int("id"); err != nil {
		return Vault{}, err
	}
	if v.Name, err = o.String("name"); err != nil {
		return Vault{}, err
	}
	if v.Description, err = o.StringOr("description", ""); err != nil {
		return Vault{}, err
	}
	return v, nil
}

func decodeSecretField(o wire.Object) (SecretField, error) {
	var f SecretField
	var err error
	if f.Name, err = o.String("name"); err != nil {
		return SecretField{}, err
	}
	if f.Slug, err = o.String("slug"); err != nil {
		return SecretField{}, err
	}
	if f.Value, err = o.String("value"); err != nil {
		return SecretField{}, err
	}
	return f, nil
}

func decodeEncryptedSecret(o wire.Object) (EncryptedSecret, error) {
	var s EncryptedSecret
	var err error
	if s.ID, err = o.Int("id"); err != nil {
		return EncryptedSecret{}, err
	}
	if s.Name, err = o.String("name"); err != nil {
		return EncryptedSecret{}, err
	}
	if s.ExternalID, err = o.String("azureId"); err != nil {
		return EncryptedSecret{}, err
	}
	if s.Fields, err = o.Strings("fields"); err != nil {
		return EncryptedSecret{}, err
	}
	if s.Vault, err = decodeNested(o, "vault", decodeVault); err != nil {
		return EncryptedSecret{}, err
	}
	if s.Owner, err = decodeNested(o, "owner", decodeUser); err != nil {
		return EncryptedSecret{}, err
	}
	return s, nil
}

func decodeDecryptedSecret(o wire.Object) (DecryptedSecret, error) {
	var s DecryptedSecret
	var err error
	if s.Name, err = o.String("name"); err != nil {
		return DecryptedSecret{}, err
	}
	if s.Slug, err = o.String("slug"); err != nil {
		return DecryptedSecret{}, err
	}
	if s.Description, err = o.StringOr("description", ""); err != nil {
		return DecryptedSecret{}, err
	}
	if s.Vault, err = o.String("vault"); err != nil {
		return DecryptedSecret{}, err
	}
	fields, err := o.List("fields")
	if err != nil {
		return DecryptedSecret{}, err
	}
	if s.Fields, err = decodeEach(fields, decodeSecretField); err != nil {
		return DecryptedSecret{}, wire.Path("fields", err)
	}
	return s, nil
}

func decodeProject(o wire.Object) (Project, error) {
	var p Project
	var err error
	if p.ID, err = o.Int("id"); err != nil {
		return Project{}, err
	}
	if p.Name, err = o.String("name"); err != nil {
		return Project{}, err
	}
	if p.Description, err = o.StringOr("description", ""); err != nil {
		return Project{}, err
	}
	if p.Slug, err = o.String("slug"); err != nil {
		return Project{}, err
	}
	if p.Owner, err = decodeNested(o, "owner", decodeUser); err != nil {
		return Project{}, err
	}

	p.Secrets = []EncryptedSecret{}
	if o["secrets"] != nil {
		secrets, err := o.List("secrets")
		if err != nil {
			return Project{}, err
		}
		if p.Secrets, err = decodeEach(secrets, decodeEncryptedSecret); err != nil {
			return Project{}, wire.Path("secrets", err)
		}
	}
	return p, nil
}

// decodeToken decodes a token. Listings pass withSecret false so that an
// apiSecret is never exposed outside the creation response.
func decodeToken(o wire.Object, withSecret bool) (Token, error) {
	var t Token
	var err error
	if t.Principal, err = o.String("principal"); err != nil {
		return Token{}, err
	}
	if t.APIKey, err = o.OptionalString("apiKey"); err != nil {
		return Token{}, err
	}
	if withSecret {
		if t.APISecret, err = o.OptionalString("apiSecret"); err != nil {
			return Token{}, err
		}
	}
	if t.UserToken, err = o.Bool("userToken"); err != nil {
		return Token{}, err
	}
	if t.Owner, err = decodeNested(o, "owner", decodeUser); err != nil {
		return Token{}, err
	}
	if t.Expiry, err = o.Int("expiry"); err != nil {
		return Token{}, err
	}
	if t.Authorities, err = o.Strings("authorities"); err != nil {
		return Token{}, err
	}
	return t, nil
}

func decodeSelfInfo(o wire.Object) (SelfInfo, error) {
	var s SelfInfo
	var err error
	if s.Principal, err = o.String("principal"); err != nil {
		return SelfInfo{}, err
	}
	if s.EncryptedSecret, err = o.StringOr("encryptedSecret", ""); err != nil {
		return SelfInfo{}, err
	}
	if s.UserToken, err = o.Bool("userToken"); err != nil {
		return SelfInfo{}, err
	}
	if s.Owner, err = decodeNested(o, "owner", decodeUser); err != nil {
		return SelfInfo{}, err
	}
	if s.Expiry, err = o.Int("expiry"); err != nil {
		return SelfInfo{}, err
	}
	if s.Authorities, err = o.Strings("authorities"); err != nil {
		return SelfInfo{}, err
	}
	return s, nil
}

func decodeNested[T any](o wire.Object, key string, decode func(wire.Object) (T, error)) (T, error) {
	var zero T
	nested, err := o.Object(key)
	if err != nil {
		return zero, err
	}
	v, err := decode(nested)
	if err != nil {
		return zero, wire.Path(key, err)
	}
	return v, nil
}

// decodeEach decodes every element of items independently. The result is
// never nil.
func decodeEach[T any](items []any, decode func(wire.Object) (T, error)) ([]T, error) {
	out := make([]T, 0, len(items))
	for i, item := range items {
		key := fmt.Sprintf("[%d]", i)
		obj, err := wire.AsObject(item)
		if err != nil {
			return nil, wire.Path(key, err)
		}
		v, err := decode(obj)
		if err != nil {
			return nil, wire.Path(key, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// decodeOne decodes a single-entity response.
func decodeOne[T any](raw Payload, decode func(wire.Object) (T, error)) (*T, error) {
	obj, err := wire.AsObject(raw)
	if err != nil {
		return nil, decodeFailed(err)
	}
	v, err := decode(obj)
	if err != nil {
		return nil, decodeFailed(err)
	}
	return &v, nil
}

// decodeList decodes a list response. An empty response yields an empty,
// non-nil slice.
func decodeList[T any](raw Payload, decode func(wire.Object) (T, error)) ([]T, error) {
	items, err := wire.AsList(raw)
	if err != nil {
		return nil, decodeFailed(err)
	}
	out, err := decodeEach(items, decode)
	if err != nil {
		return nil, decodeFailed(err)
	}
	return out, nil
}
