package ecommerce

// Admin GraphQL documents. Collections share the cursor/limit variable
// pair consumed by the paged iterator.

const shopQuery = `
{
  shop {
    name
    id
  }
}`

const customersQuery = `
query getCustomers($cursor: String, $limit: Int!) {
  customers(first: $limit, after: $cursor) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        firstName
        lastName
        email
        phone
        verifiedEmail
        numberOfOrders
        amountSpent {
          amount
          currencyCode
        }
        defaultAddress {
          address1
          city
          province
          country
          zip
        }
        addresses {
          address1
          address2
          city
          province
          country
          zip
          phone
        }
        createdAt
        updatedAt
        tags
        note
      }
    }
  }
}`

const customerQuery = `
query getCustomer($id: ID!) {
  customer(id: $id) {
    id
    firstName
    lastName
    email
    phone
    verifiedEmail
    numberOfOrders
    amountSpent {
      amount
      currencyCode
    }
    defaultAddress {
      address1
      city
      province
      country
      zip
    }
    addresses {
      address1
      address2
      city
      province
      country
      zip
      phone
    }
    tags
    note
  }
}`

const customerCreateMutation = `
mutation customerCreate($input: CustomerInput!) {
  customerCreate(input: $input) {
    customer {
      id
      email
      phone
      firstName
      lastName
      tags
      note
    }
    userErrors {
      field
      message
    }
  }
}`

const customerUpdateMutation = `
mutation customerUpdate($input: CustomerInput!) {
  customerUpdate(input: $input) {
    customer {
      id
      email
      phone
      firstName
      lastName
      note
      tags
      addresses {
        address1
        city
        province
        country
        zip
      }
    }
    userErrors {
      field
      message
    }
  }
}`

const customerDeleteMutation = `
mutation customerDelete($input: CustomerDeleteInput!) {
  customerDelete(input: $input) {
    deletedCustomerId
    userErrors {
      field
      message
    }
  }
}`

const ordersQuery = `
query getOrders($cursor: String, $limit: Int!) {
  orders(first: $limit, after: $cursor) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        name
        email
        phone
        createdAt
        processedAt
        displayFinancialStatus
        displayFulfillmentStatus
        tags
        note
        customer {
          id
          email
          firstName
          lastName
          phone
        }
        subtotalPriceSet {
          shopMoney {
            amount
            currencyCode
          }
        }
        totalShippingPriceSet {
          shopMoney {
            amount
            currencyCode
          }
        }
        totalTaxSet {
          shopMoney {
            amount
            currencyCode
          }
        }
        totalPriceSet {
          shopMoney {
            amount
            currencyCode
          }
        }
        shippingAddress {
          address1
          address2
          city
          province
          country
          zip
          phone
          firstName
          lastName
        }
        billingAddress {
          address1
          address2
          city
          province
          country
          zip
          phone
          firstName
          lastName
        }
        lineItems(first: 50) {
          edges {
            node {
              title
              variantTitle
              quantity
              originalUnitPrice
              sku
              variant {
                id
              }
            }
          }
        }
      }
    }
  }
}`

const productsQuery = `
query getProducts($cursor: String, $limit: Int!) {
  products(first: $limit, after: $cursor) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        title
        description
        vendor
        productType
        status
        tags
        createdAt
        updatedAt
        variants(first: 50) {
          edges {
            node {
              id
              title
              sku
              price
              inventoryQuantity
            }
          }
        }
      }
    }
  }
}`

const productCreateMutation = `
mutation productCreate($input: ProductInput!) {
  productCreate(input: $input) {
    product {
      id
      title
      vendor
      productType
      status
      tags
      variants(first: 50) {
        edges {
          node {
            id
            title
            sku
            price
            inventoryQuantity
          }
        }
      }
    }
    userErrors {
      field
      message
    }
  }
}`

const productUpdateMutation = `
mutation productUpdate($input: ProductInput!) {
  productUpdate(input: $input) {
    product {
      id
      title
      vendor
      productType
      status
      tags
      variants(first: 50) {
        edges {
          node {
            id
            title
            sku
            price
            inventoryQuantity
          }
        }
      }
    }
    userErrors {
      field
      message
    }
  }
}`

const variantUpdateMutation = `
mutation variantUpdate($input: ProductVariantInput!) {
  productVariantUpdate(input: $input) {
    productVariant {
      id
      price
      sku
    }
    userErrors {
      field
      message
    }
  }
}`
